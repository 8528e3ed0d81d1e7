package inventory

import (
	"context"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	GetByName(ctx context.Context, name string) (*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Medicine, int, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Medicine, error)
	ListLowStock(ctx context.Context) ([]*Medicine, error)
	ListExpiring(ctx context.Context, days int) ([]*Medicine, error)
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Query    string // case-insensitive substring on name
	Category string
}
