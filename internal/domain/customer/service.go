package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mediflow/mediflow/internal/domain/safety"
)

type Service struct {
	repo CustomerRepository
}

func NewService(repo CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(c *Customer) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.DateOfBirth != nil && c.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date_of_birth must not be in the future")
	}
	return nil
}

func (s *Service) CreateCustomer(ctx context.Context, c *Customer) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, c *Customer) error {
	if err := s.validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, query string, limit, offset int) ([]*Customer, int, error) {
	return s.repo.List(ctx, query, limit, offset)
}

// CustomerName returns just the display name, used by domains that
// denormalize it.
func (s *Service) CustomerName(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// SafetyProfile builds the safety evaluation profile for a customer. The
// comma-separated allergy and condition fields are split here so the safety
// engine only ever sees clean lists.
func (s *Service) SafetyProfile(ctx context.Context, customerID uuid.UUID) (safety.Profile, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return safety.Profile{}, fmt.Errorf("load customer %s: %w", customerID, err)
	}

	p := safety.Profile{}
	if c.DateOfBirth != nil {
		age := safety.AgeAt(*c.DateOfBirth, time.Now())
		p.Age = &age
	}
	if c.MedicalConditions != nil {
		p.Conditions = safety.SplitList(*c.MedicalConditions)
	}
	if c.Allergies != nil {
		p.Allergies = safety.SplitList(*c.Allergies)
	}
	return p, nil
}
