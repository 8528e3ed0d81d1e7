package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediflow/mediflow/internal/domain/inventory"
	"github.com/mediflow/mediflow/internal/domain/safety"
	"github.com/mediflow/mediflow/internal/platform/db"
)

// SafetyChecker evaluates a medicine list against a patient profile.
type SafetyChecker interface {
	Check(medicines []string, profile safety.Profile) safety.Result
}

// ProfileSource resolves a customer's safety profile.
type ProfileSource interface {
	SafetyProfile(ctx context.Context, customerID uuid.UUID) (safety.Profile, error)
}

// Inventory is the slice of the inventory service prescriptions need.
type Inventory interface {
	GetMedicine(ctx context.Context, id uuid.UUID) (*inventory.Medicine, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*inventory.Medicine, error)
}

// CustomerSource resolves the customer record for denormalized fields.
type CustomerSource interface {
	CustomerName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	repo      PrescriptionRepository
	inventory Inventory
	profiles  ProfileSource
	names     CustomerSource
	checker   SafetyChecker
	pool      *pgxpool.Pool
}

func NewService(repo PrescriptionRepository, inv Inventory, profiles ProfileSource,
	names CustomerSource, checker SafetyChecker, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, inventory: inv, profiles: profiles, names: names, checker: checker, pool: pool}
}

// CreateResult pairs a created prescription with its advisory safety check.
type CreateResult struct {
	Prescription *Prescription  `json:"prescription"`
	Safety       *safety.Result `json:"safety,omitempty"`
}

// Create validates and stores a new prescription. The safety check covers the
// customer's open prescriptions plus the new medicine and is advisory: a
// high-risk result is returned to the caller but never blocks creation.
func (s *Service) Create(ctx context.Context, p *Prescription) (*CreateResult, error) {
	if p.CustomerID == uuid.Nil {
		return nil, fmt.Errorf("customer_id is required")
	}
	if p.MedicineID == uuid.Nil {
		return nil, fmt.Errorf("medicine_id is required")
	}
	if p.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	med, err := s.inventory.GetMedicine(ctx, p.MedicineID)
	if err != nil {
		return nil, fmt.Errorf("medicine %s: %w", p.MedicineID, err)
	}
	name, err := s.names.CustomerName(ctx, p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", p.CustomerID, err)
	}

	p.MedicineName = med.Name
	p.CustomerName = name
	p.Status = StatusPending
	p.TotalCost = float64(p.Quantity) * med.UnitPrice
	if p.PrescribedAt.IsZero() {
		p.PrescribedAt = time.Now()
	}

	var result *safety.Result
	if s.checker != nil {
		medicines, err := s.repo.ActiveMedicineNames(ctx, p.CustomerID)
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, med.Name)

		profile := safety.Profile{}
		if s.profiles != nil {
			profile, err = s.profiles.SafetyProfile(ctx, p.CustomerID)
			if err != nil {
				return nil, err
			}
		}
		r := s.checker.Check(medicines, profile)
		result = &r
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &CreateResult{Prescription: p, Safety: result}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Prescription, int, error) {
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("unknown status %q", filter.Status)
	}
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// UpdateStatus moves a prescription through its lifecycle. Completing a
// prescription decrements inventory stock in the same transaction as the
// status change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Prescription, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(p.Status, status) {
		return nil, fmt.Errorf("cannot move prescription from %s to %s", p.Status, status)
	}

	apply := func(txCtx context.Context) error {
		if status == StatusCompleted {
			if _, err := s.inventory.AdjustStock(txCtx, p.MedicineID, -p.Quantity); err != nil {
				return fmt.Errorf("decrement stock for %s: %w", p.MedicineName, err)
			}
		}
		return s.repo.UpdateStatus(txCtx, id, status)
	}

	if s.pool != nil {
		err = db.WithTx(ctx, s.pool, apply)
	} else {
		err = apply(ctx)
	}
	if err != nil {
		return nil, err
	}

	p.Status = status
	return p, nil
}
