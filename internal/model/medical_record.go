package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord documents one consultation. Creating a record is what moves
// the source appointment to completed.
type MedicalRecord struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PetID           uuid.UUID  `db:"pet_id" json:"pet_id"`
	AppointmentID   uuid.UUID  `db:"appointment_id" json:"appointment_id"`
	VetID           uuid.UUID  `db:"vet_id" json:"vet_id"`
	Symptoms        string     `db:"symptoms" json:"symptoms"`
	Diagnosis       string     `db:"diagnosis" json:"diagnosis"`
	Treatment       string     `db:"treatment" json:"treatment"`
	Medication      *string    `db:"medication" json:"medication,omitempty"`
	Weight          *float64   `db:"weight" json:"weight,omitempty"`
	Temperature     *float64   `db:"temperature" json:"temperature,omitempty"`
	Observations    *string    `db:"observations" json:"observations,omitempty"`
	Recommendations *string    `db:"recommendations" json:"recommendations,omitempty"`
	NextVisit       *time.Time `db:"next_visit" json:"next_visit,omitempty"`
	AttendedAt      time.Time  `db:"attended_at" json:"attended_at"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateMedicalRecordRequest struct {
	PetID           uuid.UUID  `json:"pet_id" binding:"required"`
	AppointmentID   uuid.UUID  `json:"appointment_id" binding:"required"`
	VetID           uuid.UUID  `json:"vet_id" binding:"required"`
	Symptoms        string     `json:"symptoms" binding:"required"`
	Diagnosis       string     `json:"diagnosis" binding:"required"`
	Treatment       string     `json:"treatment" binding:"required"`
	Medication      *string    `json:"medication"`
	Weight          *float64   `json:"weight"`
	Temperature     *float64   `json:"temperature"`
	Observations    *string    `json:"observations"`
	Recommendations *string    `json:"recommendations"`
	NextVisit       *time.Time `json:"next_visit"`
}

type UpdateMedicalRecordRequest struct {
	Symptoms        *string    `json:"symptoms"`
	Diagnosis       *string    `json:"diagnosis"`
	Treatment       *string    `json:"treatment"`
	Medication      *string    `json:"medication"`
	Weight          *float64   `json:"weight"`
	Temperature     *float64   `json:"temperature"`
	Observations    *string    `json:"observations"`
	Recommendations *string    `json:"recommendations"`
	NextVisit       *time.Time `json:"next_visit"`
}
