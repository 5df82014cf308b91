package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// PaymentStatus is an independent axis from AppointmentStatus: a confirmed
// walk-in appointment can still be unpaid.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

// Appointment is the central scheduling entity. Date is "2006-01-02", Time is
// a "15:04" slot label; the pair plus VetID identifies a bookable slot.
type Appointment struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	ClientID       uuid.UUID         `db:"client_id" json:"client_id"`
	PetID          uuid.UUID         `db:"pet_id" json:"pet_id"`
	VetID          *uuid.UUID        `db:"vet_id" json:"vet_id,omitempty"`
	ServiceID      uuid.UUID         `db:"service_id" json:"service_id"`
	Date           string            `db:"appointment_date" json:"date"`
	Time           string            `db:"appointment_time" json:"time"`
	Status         AppointmentStatus `db:"status" json:"status"`
	PaymentStatus  PaymentStatus     `db:"payment_status" json:"payment_status"`
	Reason         string            `db:"reason" json:"reason,omitempty"`
	PriceAtBooking float64           `db:"price_at_booking" json:"price_at_booking"`
	Notes          string            `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	ClientID  uuid.UUID  `json:"client_id" binding:"required"`
	PetID     uuid.UUID  `json:"pet_id" binding:"required"`
	VetID     *uuid.UUID `json:"vet_id"`
	ServiceID uuid.UUID  `json:"service_id" binding:"required"`
	Date      string     `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string     `json:"time" binding:"required,datetime=15:04"`
	Reason    string     `json:"reason"`
	Price     *float64   `json:"price" binding:"omitempty,gt=0"`
	Notes     string     `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date          *string            `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time          *string            `json:"time" binding:"omitempty,datetime=15:04"`
	VetID         *uuid.UUID         `json:"vet_id"`
	ServiceID     *uuid.UUID         `json:"service_id"`
	Status        *AppointmentStatus `json:"status"`
	PaymentStatus *PaymentStatus     `json:"payment_status"`
	Reason        *string            `json:"reason"`
	Price         *float64           `json:"price" binding:"omitempty,gt=0"`
	Notes         *string            `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type AppointmentFilters struct {
	ClientID  *uuid.UUID
	PetID     *uuid.UUID
	VetID     *uuid.UUID
	Status    *AppointmentStatus
	DateFrom  string
	DateTo    string
	Limit     int
}

// DayStats summarizes the dashboard view of a single day.
type DayStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
}

// Availability is the availability calculator's result.
type Availability struct {
	Date            string   `json:"date"`
	ServiceName     string   `json:"service"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}
