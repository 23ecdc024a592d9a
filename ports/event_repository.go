package ports

import (
	"context"

	"github.com/google/uuid"

	"pointage/models"
)

// EventRepository defines the interface for the append-only event log
type EventRepository interface {
	// AppendEvent records one transition. Events are never mutated or deleted.
	AppendEvent(ctx context.Context, event *models.TimeEvent) error

	// ListSessionEvents returns a session's events ordered by timestamp
	ListSessionEvents(ctx context.Context, sessionID uuid.UUID) ([]models.TimeEvent, error)
}
