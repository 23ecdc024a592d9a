package models

import (
	"time"

	"github.com/google/uuid"
)

// Role controls what a user may do
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// CanViewDashboards reports whether the role grants supervisor surfaces
func (r Role) CanViewDashboards() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

// User represents a system user
type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Username      string     `json:"username" db:"username"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FullName      string     `json:"full_name" db:"full_name"`
	Role          Role       `json:"role" db:"role"`
	WorkstationID *uuid.UUID `json:"workstation_id,omitempty" db:"workstation_id"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Principal is the authenticated identity attached to each request
type Principal struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Role          Role       `json:"role"`
	WorkstationID *uuid.UUID `json:"workstation_id,omitempty"`
}
