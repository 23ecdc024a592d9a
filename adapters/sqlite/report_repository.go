package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pointage/models"
	"pointage/ports"
)

// ReportRepositoryImpl implements the read-only aggregation queries.
// Sums come from the cached total columns; open sessions contribute their
// live figures at the service layer, never per-event SQL.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new SQLite report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// ActiveSessions returns open sessions for a date with user and workstation names
func (r *ReportRepositoryImpl) ActiveSessions(ctx context.Context, date string) ([]models.ActiveSessionRow, error) {
	var rows []models.ActiveSessionRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT s.id AS session_id, s.user_id, u.username, u.full_name,
			w.code AS workstation_code, w.name AS workstation_name,
			s.status, s.start_time
		FROM work_sessions s
		JOIN users u ON u.id = s.user_id
		JOIN workstations w ON w.id = s.workstation_id
		WHERE s.date = ? AND s.status IN ('active', 'on_break')
		ORDER BY s.start_time ASC
	`, date)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyRoster returns every employee LEFT JOINed to the day's sessions.
// Employees without a session appear with zero aggregates.
func (r *ReportRepositoryImpl) DailyRoster(ctx context.Context, date string) ([]models.RosterRow, error) {
	var rows []models.RosterRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT u.id AS user_id, u.username, u.full_name,
			COUNT(s.id) AS session_count,
			COALESCE(SUM(s.total_work_minutes), 0) AS total_work_minutes,
			COALESCE(SUM(s.total_break_minutes), 0) AS total_break_minutes,
			COALESCE(MAX(s.status = 'active'), 0) AS is_currently_active,
			MIN(s.start_time) AS first_start
		FROM users u
		LEFT JOIN work_sessions s ON s.user_id = u.id AND s.date = ?
		WHERE u.role = 'employee' AND u.is_active = 1
		GROUP BY u.id, u.username, u.full_name
		ORDER BY u.full_name ASC, u.username ASC
	`, date)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WorkstationSessions returns session rows in a date range for utilization stats
func (r *ReportRepositoryImpl) WorkstationSessions(ctx context.Context, from, to string) ([]models.ReportSessionRow, error) {
	var rows []models.ReportSessionRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT s.id AS session_id, s.date, u.username, u.full_name,
			w.code AS workstation_code, w.name AS workstation_name,
			s.status, s.start_time, s.end_time,
			s.total_work_minutes, s.total_break_minutes
		FROM work_sessions s
		JOIN users u ON u.id = s.user_id
		JOIN workstations w ON w.id = s.workstation_id
		WHERE s.date >= ? AND s.date <= ?
		ORDER BY w.code ASC, s.date ASC, s.start_time ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReportSessions returns session rows matching the filter
func (r *ReportRepositoryImpl) ReportSessions(ctx context.Context, filter models.ReportFilter) ([]models.ReportSessionRow, error) {
	query := `
		SELECT s.id AS session_id, s.date, u.username, u.full_name,
			w.code AS workstation_code, w.name AS workstation_name,
			s.status, s.start_time, s.end_time,
			s.total_work_minutes, s.total_break_minutes
		FROM work_sessions s
		JOIN users u ON u.id = s.user_id
		JOIN workstations w ON w.id = s.workstation_id
		WHERE s.date >= ? AND s.date <= ?`

	args := []interface{}{filter.From, filter.To}
	if filter.EmployeeID != nil {
		query += ` AND s.user_id = ?`
		args = append(args, *filter.EmployeeID)
	}
	if filter.WorkstationCode != "" {
		query += ` AND w.code = ?`
		args = append(args, filter.WorkstationCode)
	}
	query += `
		ORDER BY s.date DESC, s.start_time DESC`

	var rows []models.ReportSessionRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
