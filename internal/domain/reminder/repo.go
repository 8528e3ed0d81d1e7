package reminder

import (
	"context"

	"github.com/google/uuid"
)

type ReminderRepository interface {
	Create(ctx context.Context, r *RefillReminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*RefillReminder, error)
	Update(ctx context.Context, r *RefillReminder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*RefillReminder, int, error)
	// ListDue returns active reminders due within daysAhead days, including
	// overdue ones, ordered soonest first.
	ListDue(ctx context.Context, daysAhead int) ([]*RefillReminder, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}
