package sqlite

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pointage/models"
	"pointage/ports"
)

// EventRepositoryImpl implements EventRepository for SQLite
type EventRepositoryImpl struct {
	db *sqlx.DB
}

// NewEventRepository creates a new SQLite event repository
func NewEventRepository(db *sqlx.DB) ports.EventRepository {
	return &EventRepositoryImpl{db: db}
}

// AppendEvent records one transition in the append-only log
func (r *EventRepositoryImpl) AppendEvent(ctx context.Context, event *models.TimeEvent) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO time_events (id, session_id, event_type, timestamp, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.ID, event.SessionID, event.EventType, event.Timestamp, event.Notes, event.CreatedAt)
	return err
}

// ListSessionEvents returns a session's events ordered by timestamp
func (r *EventRepositoryImpl) ListSessionEvents(ctx context.Context, sessionID uuid.UUID) ([]models.TimeEvent, error) {
	var events []models.TimeEvent
	err := sqlx.SelectContext(ctx, querier(ctx, r.db), &events, `
		SELECT id, session_id, event_type, timestamp, notes, created_at
		FROM time_events
		WHERE session_id = ?
		ORDER BY timestamp ASC, created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	return events, nil
}
