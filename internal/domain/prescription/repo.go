package prescription

import (
	"context"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Prescription, int, error)
	// ActiveMedicineNames returns the medicine names on the customer's
	// Pending and Partially Filled prescriptions.
	ActiveMedicineNames(ctx context.Context, customerID uuid.UUID) ([]string, error)
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	CustomerID uuid.UUID
	Status     string
}
