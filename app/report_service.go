package app

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"pointage/domain/core"
	"pointage/domain/timeclock"
	"pointage/internal/errors"
	"pointage/internal/logging"
	"pointage/models"
	"pointage/ports"
)

// ReportService answers the supervisor dashboards and reports. It never
// mutates state and never replays event logs at scale: completed sessions
// are summed from their cached totals, only the handful of open sessions
// get a live replay.
type ReportService struct {
	reports   ports.ReportRepository
	events    ports.EventRepository
	rangeDays int
	clock     func() time.Time
	log       *logging.Logger
}

// NewReportService creates the aggregator
func NewReportService(reports ports.ReportRepository, events ports.EventRepository, rangeDays int, log *logging.Logger) *ReportService {
	if rangeDays <= 0 {
		rangeDays = 30
	}
	return &ReportService{
		reports:   reports,
		events:    events,
		rangeDays: rangeDays,
		clock:     time.Now,
		log:       log,
	}
}

// WithClock overrides the time source for tests
func (s *ReportService) WithClock(clock func() time.Time) *ReportService {
	s.clock = clock
	return s
}

// ActiveSessions returns the live view of everyone currently clocked in
func (s *ReportService) ActiveSessions(ctx context.Context, date string) ([]models.ActiveSessionRow, error) {
	now := s.clock()
	if date == "" {
		date = core.DateOf(now).String()
	}

	rows, err := s.reports.ActiveSessions(ctx, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query active sessions")
	}

	for i := range rows {
		totals := s.replay(ctx, rows[i].SessionID, now)
		rows[i].WorkMinutes = totals.WorkMinutes
		rows[i].BreakMinutes = totals.BreakMinutes
		rows[i].WorkFormatted = timeclock.FormatDuration(totals.WorkMinutes)
		rows[i].BreakFormatted = timeclock.FormatDuration(totals.BreakMinutes)
	}
	return rows, nil
}

// DailyRoster returns every employee for the date, including those who have
// not shown up. Sums cover completed sessions; an employee still clocked in
// shows their cached sums plus the is_currently_active flag.
func (s *ReportService) DailyRoster(ctx context.Context, date string) ([]models.RosterRow, error) {
	if date == "" {
		date = core.DateOf(s.clock()).String()
	}

	rows, err := s.reports.DailyRoster(ctx, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query daily roster")
	}
	for i := range rows {
		rows[i].WorkFormatted = timeclock.FormatDuration(rows[i].TotalWorkMinutes)
		rows[i].BreakFormatted = timeclock.FormatDuration(rows[i].TotalBreakMinutes)
	}
	return rows, nil
}

// WorkstationUtilization aggregates sessions per workstation over a range
func (s *ReportService) WorkstationUtilization(ctx context.Context, from, to string) ([]models.WorkstationUtilization, error) {
	from, to = s.normalizeRange(from, to)

	rows, err := s.reports.WorkstationSessions(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query workstation sessions")
	}

	type bucket struct {
		util    models.WorkstationUtilization
		minutes []float64
		users   map[string]struct{}
		days    map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, row := range rows {
		b, ok := buckets[row.WorkstationCode]
		if !ok {
			b = &bucket{
				util:  models.WorkstationUtilization{Code: row.WorkstationCode, Name: row.WorkstationName},
				users: make(map[string]struct{}),
				days:  make(map[string]struct{}),
			}
			buckets[row.WorkstationCode] = b
			order = append(order, row.WorkstationCode)
		}
		b.util.SessionCount++
		b.util.TotalWorkMinutes += row.TotalWorkMinutes
		b.minutes = append(b.minutes, float64(row.TotalWorkMinutes))
		b.users[row.Username] = struct{}{}
		b.days[row.Date] = struct{}{}
		if row.Status.IsOpen() {
			b.util.CurrentlyActive++
		}
	}

	sort.Strings(order)
	result := make([]models.WorkstationUtilization, 0, len(order))
	for _, code := range order {
		b := buckets[code]
		b.util.DistinctUsers = len(b.users)
		b.util.DistinctDays = len(b.days)
		if mean, err := stats.Mean(b.minutes); err == nil {
			b.util.MeanWorkMinutes = mean
		}
		if median, err := stats.Median(b.minutes); err == nil {
			b.util.MedianWorkMinutes = median
		}
		result = append(result, b.util)
	}
	return result, nil
}

// Summary builds the cross-cutting report: session rows plus per-employee,
// per-workstation and global breakdowns. An unspecified range defaults to
// the trailing configured window.
func (s *ReportService) Summary(ctx context.Context, filter models.ReportFilter) (*models.ReportSummary, error) {
	filter.From, filter.To = s.normalizeRange(filter.From, filter.To)
	now := s.clock()

	rows, err := s.reports.ReportSessions(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query report sessions")
	}

	// Open sessions in range report live figures
	for i := range rows {
		if rows[i].Status.IsOpen() {
			totals := s.replay(ctx, rows[i].SessionID, now)
			rows[i].TotalWorkMinutes = totals.WorkMinutes
			rows[i].TotalBreakMinutes = totals.BreakMinutes
		}
		rows[i].WorkFormatted = timeclock.FormatDuration(rows[i].TotalWorkMinutes)
		rows[i].BreakFormatted = timeclock.FormatDuration(rows[i].TotalBreakMinutes)
	}

	summary := &models.ReportSummary{
		Filter:        filter,
		Sessions:      rows,
		ByEmployee:    breakdownBy(rows, func(r models.ReportSessionRow) (string, string) { return r.Username, r.FullName }),
		ByWorkstation: breakdownBy(rows, func(r models.ReportSessionRow) (string, string) { return r.WorkstationCode, r.WorkstationName }),
		GeneratedAt:   now,
		TotalSessions: len(rows),
	}
	summary.TotalEmployees = len(summary.ByEmployee)

	global := models.ReportBreakdown{Key: "global", Label: "All sessions"}
	for _, row := range rows {
		global.SessionCount++
		global.TotalWorkMinutes += row.TotalWorkMinutes
		global.TotalBreakMinutes += row.TotalBreakMinutes
	}
	global.WorkFormatted = timeclock.FormatDuration(global.TotalWorkMinutes)
	global.BreakFormatted = timeclock.FormatDuration(global.TotalBreakMinutes)
	summary.Global = global

	return summary, nil
}

func breakdownBy(rows []models.ReportSessionRow, key func(models.ReportSessionRow) (string, string)) []models.ReportBreakdown {
	buckets := make(map[string]*models.ReportBreakdown)
	var order []string

	for _, row := range rows {
		k, label := key(row)
		b, ok := buckets[k]
		if !ok {
			b = &models.ReportBreakdown{Key: k, Label: label}
			buckets[k] = b
			order = append(order, k)
		}
		b.SessionCount++
		b.TotalWorkMinutes += row.TotalWorkMinutes
		b.TotalBreakMinutes += row.TotalBreakMinutes
	}

	sort.Strings(order)
	result := make([]models.ReportBreakdown, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		b.WorkFormatted = timeclock.FormatDuration(b.TotalWorkMinutes)
		b.BreakFormatted = timeclock.FormatDuration(b.TotalBreakMinutes)
		result = append(result, *b)
	}
	return result
}

// normalizeRange fills missing bounds with the trailing default window
func (s *ReportService) normalizeRange(from, to string) (string, string) {
	now := s.clock()
	if to == "" {
		to = core.DateOf(now).String()
	}
	if from == "" {
		from = core.DateOf(now.AddDate(0, 0, -s.rangeDays)).String()
	}
	return from, to
}

func (s *ReportService) replay(ctx context.Context, sessionID uuid.UUID, now time.Time) timeclock.Totals {
	events, err := s.events.ListSessionEvents(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to load events for session %s: %v", sessionID, err)
		return timeclock.Totals{}
	}
	totals, anomalies := timeclock.Replay(models.ReplayEvents(events), now)
	for _, a := range anomalies {
		s.log.Warn("event log anomaly in session %s: %s", sessionID, a)
	}
	return totals
}
