package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses. A prescription starts Pending, may be partially
// filled, and ends Completed or Cancelled.
const (
	StatusPending         = "Pending"
	StatusPartiallyFilled = "Partially Filled"
	StatusCompleted       = "Completed"
	StatusCancelled       = "Cancelled"
)

// validTransitions maps each status to the statuses it may move to.
var validTransitions = map[string][]string{
	StatusPending:         {StatusPartiallyFilled, StatusCompleted, StatusCancelled},
	StatusPartiallyFilled: {StatusCompleted, StatusCancelled},
	StatusCompleted:       {},
	StatusCancelled:       {},
}

// CanTransition reports whether a prescription may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known prescription status.
func IsValidStatus(s string) bool {
	_, ok := validTransitions[s]
	return ok
}

// Prescription maps to the prescriptions table. Customer and medicine names
// are denormalized so a prescription stays readable after catalog edits.
type Prescription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CustomerID   uuid.UUID `db:"customer_id" json:"customer_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	DoctorName   *string   `db:"doctor_name" json:"doctor_name,omitempty"`
	MedicineID   uuid.UUID `db:"medicine_id" json:"medicine_id"`
	MedicineName string    `db:"medicine_name" json:"medicine_name"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Dosage       *string   `db:"dosage" json:"dosage,omitempty"`
	Instructions *string   `db:"instructions" json:"instructions,omitempty"`
	Status       string    `db:"status" json:"status"`
	TotalCost    float64   `db:"total_cost" json:"total_cost"`
	PrescribedAt time.Time `db:"prescribed_at" json:"prescribed_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
