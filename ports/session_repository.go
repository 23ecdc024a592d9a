package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pointage/models"
)

// SessionRepository defines the interface for work session persistence
type SessionRepository interface {
	// CreateSession inserts a new session row
	CreateSession(ctx context.Context, session *models.WorkSession) error

	// GetOpenSession returns the non-completed session for (user, date),
	// or nil when the user has not started that day
	GetOpenSession(ctx context.Context, userID uuid.UUID, date string) (*models.WorkSession, error)

	// GetLatestSession returns the most recent session for (user, date)
	// regardless of status, or nil when the user has none that day
	GetLatestSession(ctx context.Context, userID uuid.UUID, date string) (*models.WorkSession, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID uuid.UUID) (*models.WorkSession, error)

	// UpdateStatus moves an open session between active and on_break
	UpdateStatus(ctx context.Context, sessionID uuid.UUID, status models.SessionStatus) error

	// CompleteSession finalizes a session: status=completed, end_time and
	// the cached totals become authoritative
	CompleteSession(ctx context.Context, sessionID uuid.UUID, endTime time.Time, workMinutes, breakMinutes int) error

	// ListUserSessions returns the user's sessions most-recent-first,
	// joined with workstation info
	ListUserSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.SessionWithWorkstation, error)
}
