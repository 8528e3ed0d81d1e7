package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder statuses.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// IsValidStatus reports whether s is a known reminder status.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusCompleted || s == StatusCancelled
}

// RefillReminder maps to the refill_reminders table. Reminders reference
// customers and medicines by name so they survive catalog edits and can be
// created for walk-in customers.
type RefillReminder struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	CustomerName         string     `db:"customer_name" json:"customer_name"`
	MedicineName         string     `db:"medicine_name" json:"medicine_name"`
	LastPrescriptionDate *time.Time `db:"last_prescription_date" json:"last_prescription_date,omitempty"`
	RefillDueDate        time.Time  `db:"refill_due_date" json:"refill_due_date"`
	Dosage               *string    `db:"dosage" json:"dosage,omitempty"`
	QuantityPerRefill    int        `db:"quantity_per_refill" json:"quantity_per_refill"`
	ReminderSent         bool       `db:"reminder_sent" json:"reminder_sent"`
	Status               string     `db:"status" json:"status"`
	Notes                *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// IsDueWithin reports whether an active reminder falls due within the given
// number of days from now. Overdue reminders count as due.
func (r *RefillReminder) IsDueWithin(days int) bool {
	if r.Status != StatusActive {
		return false
	}
	cutoff := time.Now().AddDate(0, 0, days)
	return !r.RefillDueDate.After(cutoff)
}
