package ports

import (
	"context"

	"pointage/models"
)

// ReportRepository defines the read-only aggregation queries behind the
// supervisor dashboards and reports. Completed sessions are summed from
// cached totals so reporting stays O(sessions), never O(events).
type ReportRepository interface {
	// ActiveSessions returns open sessions for a date, joined with user and
	// workstation names. Live totals are filled in by the caller.
	ActiveSessions(ctx context.Context, date string) ([]models.ActiveSessionRow, error)

	// DailyRoster returns every employee for a date, LEFT JOINed to their
	// sessions, including employees with no session at all
	DailyRoster(ctx context.Context, date string) ([]models.RosterRow, error)

	// WorkstationSessions returns per-session rows in a date range grouped
	// by workstation, for utilization statistics
	WorkstationSessions(ctx context.Context, from, to string) ([]models.ReportSessionRow, error)

	// ReportSessions returns session rows matching the filter
	ReportSessions(ctx context.Context, filter models.ReportFilter) ([]models.ReportSessionRow, error)
}
