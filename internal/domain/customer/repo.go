package customer

import (
	"context"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, limit, offset int) ([]*Customer, int, error)
}
