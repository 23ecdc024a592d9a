package models

import (
	"time"

	"github.com/google/uuid"
)

// Workstation is a physical station identified by the code printed in its QR
type Workstation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WorkstationRef is the compact shape embedded in tracking responses
type WorkstationRef struct {
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}
