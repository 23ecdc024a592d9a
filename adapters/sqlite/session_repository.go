package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "pointage/internal/errors"
	"pointage/models"
	"pointage/ports"
)

// SessionRepositoryImpl implements SessionRepository for SQLite
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SQLite session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// CreateSession inserts a new session row. The partial unique index on
// (user_id, date) for non-completed rows makes a concurrent duplicate start
// fail here rather than produce a second open session.
func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, session *models.WorkSession) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO work_sessions (id, user_id, workstation_id, date, status, start_time, end_time,
			total_work_minutes, total_break_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL, 0, 0, ?, ?)
	`, session.ID, session.UserID, session.WorkstationID, session.Date, session.Status,
		session.StartTime, session.CreatedAt, session.UpdatedAt)
	if IsUniqueOpenSessionViolation(err) {
		// Race loser: another request opened the session between our read and
		// this insert. Surface it the same way a sequential duplicate start does.
		return apperrors.SessionAlreadyActive()
	}
	return err
}

// IsUniqueOpenSessionViolation reports whether err is the open-session
// uniqueness constraint firing
func IsUniqueOpenSessionViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ux_work_sessions_open")
}

// GetOpenSession returns the non-completed session for (user, date), or nil
func (r *SessionRepositoryImpl) GetOpenSession(ctx context.Context, userID uuid.UUID, date string) (*models.WorkSession, error) {
	var session models.WorkSession
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &session, `
		SELECT id, user_id, workstation_id, date, status, start_time, end_time,
			total_work_minutes, total_break_minutes, created_at, updated_at
		FROM work_sessions
		WHERE user_id = ? AND date = ? AND status != 'completed'
	`, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetLatestSession returns the most recent session for (user, date), any status
func (r *SessionRepositoryImpl) GetLatestSession(ctx context.Context, userID uuid.UUID, date string) (*models.WorkSession, error) {
	var session models.WorkSession
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &session, `
		SELECT id, user_id, workstation_id, date, status, start_time, end_time,
			total_work_minutes, total_break_minutes, created_at, updated_at
		FROM work_sessions
		WHERE user_id = ? AND date = ?
		ORDER BY start_time DESC
		LIMIT 1
	`, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession retrieves a session by ID
func (r *SessionRepositoryImpl) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.WorkSession, error) {
	var session models.WorkSession
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &session, `
		SELECT id, user_id, workstation_id, date, status, start_time, end_time,
			total_work_minutes, total_break_minutes, created_at, updated_at
		FROM work_sessions
		WHERE id = ?
	`, sessionID)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateStatus moves an open session between active and on_break
func (r *SessionRepositoryImpl) UpdateStatus(ctx context.Context, sessionID uuid.UUID, status models.SessionStatus) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		UPDATE work_sessions
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, sessionID)
	return err
}

// CompleteSession finalizes a session and freezes its cached totals
func (r *SessionRepositoryImpl) CompleteSession(ctx context.Context, sessionID uuid.UUID, endTime time.Time, workMinutes, breakMinutes int) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		UPDATE work_sessions
		SET status = 'completed', end_time = ?, total_work_minutes = ?, total_break_minutes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, endTime, workMinutes, breakMinutes, sessionID)
	return err
}

// ListUserSessions returns the user's sessions most-recent-first with
// workstation info
func (r *SessionRepositoryImpl) ListUserSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.SessionWithWorkstation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var sessions []models.SessionWithWorkstation
	err := sqlx.SelectContext(ctx, querier(ctx, r.db), &sessions, `
		SELECT s.id, s.user_id, s.workstation_id, s.date, s.status, s.start_time, s.end_time,
			s.total_work_minutes, s.total_break_minutes, s.created_at, s.updated_at,
			w.code AS workstation_code, w.name AS workstation_name
		FROM work_sessions s
		JOIN workstations w ON w.id = s.workstation_id
		WHERE s.user_id = ?
		ORDER BY s.start_time DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
