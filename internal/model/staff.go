package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed enumeration. Authorization checks go through Capability
// sets instead of comparing role strings in handlers.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleVeterinarian  Role = "veterinarian"
	RoleReceptionist  Role = "receptionist"
	RoleAssistant     Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleVeterinarian, RoleReceptionist, RoleAssistant:
		return true
	}
	return false
}

type Capability string

const (
	CapManageStaff        Capability = "manage_staff"
	CapManageClients      Capability = "manage_clients"
	CapManageAppointments Capability = "manage_appointments"
	CapManageMedical      Capability = "manage_medical"
	CapManageInventory    Capability = "manage_inventory"
	CapManageBilling      Capability = "manage_billing"
	CapManageCatalog      Capability = "manage_catalog"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdministrator: {
		CapManageStaff:        true,
		CapManageClients:      true,
		CapManageAppointments: true,
		CapManageMedical:      true,
		CapManageInventory:    true,
		CapManageBilling:      true,
		CapManageCatalog:      true,
	},
	RoleVeterinarian: {
		CapManageClients:      true,
		CapManageAppointments: true,
		CapManageMedical:      true,
	},
	RoleReceptionist: {
		CapManageClients:      true,
		CapManageAppointments: true,
		CapManageBilling:      true,
	},
	RoleAssistant: {
		CapManageAppointments: true,
		CapManageInventory:    true,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// StaffUser is a clinic employee.
type StaffUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	LegalID      string    `db:"legal_id" json:"legal_id,omitempty"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *StaffUser) FullName() string {
	return u.FirstName + " " + u.LastName
}

type CreateStaffRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	LegalID   string `json:"legal_id" binding:"omitempty,rut"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type UpdateStaffRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      *Role   `json:"role"`
	Active    *bool   `json:"active"`
}
