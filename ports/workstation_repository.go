package ports

import (
	"context"

	"github.com/google/uuid"

	"pointage/models"
)

// WorkstationRepository defines the interface for the workstation registry
type WorkstationRepository interface {
	// GetByCode resolves a scanned QR code to a workstation
	GetByCode(ctx context.Context, code string) (*models.Workstation, error)

	// GetByID resolves a workstation by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workstation, error)

	// List returns all workstations, optionally including inactive ones
	List(ctx context.Context, includeInactive bool) ([]models.Workstation, error)

	// Create inserts a new workstation
	Create(ctx context.Context, ws *models.Workstation) error

	// Update modifies name and active flag
	Update(ctx context.Context, ws *models.Workstation) error
}
