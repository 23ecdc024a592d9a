package core

import (
	"github.com/google/uuid"
)

// NewUUID creates a new identifier using UUID v7 for time-ordered generation.
// Falls back to v4 if v7 is not available (for compatibility).
func NewUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id
}
