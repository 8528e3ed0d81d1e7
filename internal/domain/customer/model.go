package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer maps to the customers table. Allergies and medical conditions are
// stored as comma-separated text, matching how front-desk staff enter them.
type Customer struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	Name                  string     `db:"name" json:"name"`
	DateOfBirth           *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender                *string    `db:"gender" json:"gender,omitempty"`
	BloodType             *string    `db:"blood_type" json:"blood_type,omitempty"`
	Phone                 *string    `db:"phone" json:"phone,omitempty"`
	Email                 *string    `db:"email" json:"email,omitempty"`
	Address               *string    `db:"address" json:"address,omitempty"`
	Allergies             *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalConditions     *string    `db:"medical_conditions" json:"medical_conditions,omitempty"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}
