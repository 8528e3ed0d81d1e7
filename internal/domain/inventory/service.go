package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo MedicineRepository
}

func NewService(repo MedicineRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(m *Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if m.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	if m.ReorderLevel < 0 {
		return fmt.Errorf("reorder_level must not be negative")
	}
	return nil
}

func (s *Service) CreateMedicine(ctx context.Context, m *Medicine) error {
	if err := s.validate(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if err := s.validate(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context, filter ListFilter, limit, offset int) ([]*Medicine, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Medicine, error) {
	if delta == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.AdjustStock(ctx, id, delta)
}

func (s *Service) ListLowStock(ctx context.Context) ([]*Medicine, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *Service) ListExpiring(ctx context.Context, days int) ([]*Medicine, error) {
	if days <= 0 {
		days = 30
	}
	return s.repo.ListExpiring(ctx, days)
}

// LookupBarcode resolves a scanned code to a medicine. Codes are medicine IDs;
// anything that does not parse as a UUID is tried as an exact name.
func (s *Service) LookupBarcode(ctx context.Context, code string) (*Medicine, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if id, err := uuid.Parse(code); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetByName(ctx, code)
}
