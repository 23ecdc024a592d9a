package ports

import (
	"context"

	"github.com/google/uuid"

	"pointage/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error
}
