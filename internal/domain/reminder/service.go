package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo ReminderRepository
}

func NewService(repo ReminderRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(r *RefillReminder) error {
	if r.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if r.MedicineName == "" {
		return fmt.Errorf("medicine_name is required")
	}
	if r.RefillDueDate.IsZero() {
		return fmt.Errorf("refill_due_date is required")
	}
	if r.QuantityPerRefill < 0 {
		return fmt.Errorf("quantity_per_refill must not be negative")
	}
	if r.Status != "" && !IsValidStatus(r.Status) {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	return nil
}

func (s *Service) CreateReminder(ctx context.Context, r *RefillReminder) error {
	if err := s.validate(r); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = StatusActive
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) GetReminder(ctx context.Context, id uuid.UUID) (*RefillReminder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateReminder(ctx context.Context, r *RefillReminder) error {
	if err := s.validate(r); err != nil {
		return err
	}
	return s.repo.Update(ctx, r)
}

func (s *Service) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListReminders(ctx context.Context, status string, limit, offset int) ([]*RefillReminder, int, error) {
	if status != "" && !IsValidStatus(status) {
		return nil, 0, fmt.Errorf("unknown status %q", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

// ListDue returns active reminders due within daysAhead days. A non-positive
// horizon defaults to one week, matching the counter staff's planning window.
func (s *Service) ListDue(ctx context.Context, daysAhead int) ([]*RefillReminder, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	return s.repo.ListDue(ctx, daysAhead)
}

func (s *Service) MarkSent(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkSent(ctx, id)
}
