package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Medicine maps to the medicines table.
type Medicine struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Category      *string    `db:"category" json:"category,omitempty"`
	Manufacturer  *string    `db:"manufacturer" json:"manufacturer,omitempty"`
	Supplier      *string    `db:"supplier" json:"supplier,omitempty"`
	UnitPrice     float64    `db:"unit_price" json:"unit_price"`
	CostPrice     *float64   `db:"cost_price" json:"cost_price,omitempty"`
	StockQuantity int        `db:"stock_quantity" json:"stock_quantity"`
	ReorderLevel  int        `db:"reorder_level" json:"reorder_level"`
	ExpiryDate    *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Description   *string    `db:"description" json:"description,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// IsLowStock reports whether the medicine is at or below its reorder level.
func (m *Medicine) IsLowStock() bool {
	return m.StockQuantity <= m.ReorderLevel
}

// ExpiresWithin reports whether the medicine expires within the given number
// of days from now. Medicines without an expiry date never expire.
func (m *Medicine) ExpiresWithin(days int) bool {
	if m.ExpiryDate == nil {
		return false
	}
	cutoff := time.Now().AddDate(0, 0, days)
	return !m.ExpiryDate.After(cutoff)
}
