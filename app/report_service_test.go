package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointage/domain/core"
	"pointage/internal/logging"
	"pointage/models"
)

type fakeReportRepo struct {
	active   []models.ActiveSessionRow
	roster   []models.RosterRow
	sessions []models.ReportSessionRow

	lastFilter models.ReportFilter
}

func (r *fakeReportRepo) ActiveSessions(_ context.Context, _ string) ([]models.ActiveSessionRow, error) {
	return append([]models.ActiveSessionRow(nil), r.active...), nil
}

func (r *fakeReportRepo) DailyRoster(_ context.Context, _ string) ([]models.RosterRow, error) {
	return append([]models.RosterRow(nil), r.roster...), nil
}

func (r *fakeReportRepo) WorkstationSessions(_ context.Context, _, _ string) ([]models.ReportSessionRow, error) {
	return append([]models.ReportSessionRow(nil), r.sessions...), nil
}

func (r *fakeReportRepo) ReportSessions(_ context.Context, filter models.ReportFilter) ([]models.ReportSessionRow, error) {
	r.lastFilter = filter
	return append([]models.ReportSessionRow(nil), r.sessions...), nil
}

func reportRow(user, station string, work, brk int, status models.SessionStatus) models.ReportSessionRow {
	return models.ReportSessionRow{
		SessionID:         core.NewUUID(),
		Date:              "2025-03-10",
		Username:          user,
		FullName:          user,
		WorkstationCode:   station,
		WorkstationName:   "Atelier " + station,
		Status:            status,
		TotalWorkMinutes:  work,
		TotalBreakMinutes: brk,
	}
}

func newReportFixture(repo *fakeReportRepo) *ReportService {
	svc := NewReportService(repo, &fakeEventRepo{}, 30, logging.NewLogger(logging.LogLevelError))
	return svc.WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)
	})
}

func TestSummary_Breakdowns(t *testing.T) {
	repo := &fakeReportRepo{sessions: []models.ReportSessionRow{
		reportRow("marie", "A1", 400, 30, models.SessionStatusCompleted),
		reportRow("marie", "A2", 200, 15, models.SessionStatusCompleted),
		reportRow("paul", "A1", 480, 60, models.SessionStatusCompleted),
	}}
	svc := newReportFixture(repo)

	summary, err := svc.Summary(context.Background(), models.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalSessions)
	assert.Equal(t, 2, summary.TotalEmployees)

	require.Len(t, summary.ByEmployee, 2)
	marie := summary.ByEmployee[0]
	assert.Equal(t, "marie", marie.Key)
	assert.Equal(t, 2, marie.SessionCount)
	assert.Equal(t, 600, marie.TotalWorkMinutes)
	assert.Equal(t, "10h00", marie.WorkFormatted)

	require.Len(t, summary.ByWorkstation, 2)
	a1 := summary.ByWorkstation[0]
	assert.Equal(t, "A1", a1.Key)
	assert.Equal(t, 880, a1.TotalWorkMinutes)

	assert.Equal(t, 1080, summary.Global.TotalWorkMinutes)
	assert.Equal(t, 105, summary.Global.TotalBreakMinutes)
	assert.Equal(t, "18h00", summary.Global.WorkFormatted)
}

func TestSummary_DefaultsToTrailingWindow(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newReportFixture(repo)

	_, err := svc.Summary(context.Background(), models.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", repo.lastFilter.To)
	assert.Equal(t, "2025-02-08", repo.lastFilter.From, "default range is 30 trailing days")
}

func TestSummary_KeepsExplicitRange(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newReportFixture(repo)

	_, err := svc.Summary(context.Background(), models.ReportFilter{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", repo.lastFilter.From)
	assert.Equal(t, "2025-01-31", repo.lastFilter.To)
}

func TestDailyRoster_FormatsTotals(t *testing.T) {
	repo := &fakeReportRepo{roster: []models.RosterRow{
		{UserID: core.NewUUID(), Username: "marie", SessionCount: 1, TotalWorkMinutes: 450, TotalBreakMinutes: 30, IsCurrentlyActive: true},
		{UserID: core.NewUUID(), Username: "paul"}, // not shown up
	}}
	svc := newReportFixture(repo)

	rows, err := svc.DailyRoster(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "7h30", rows[0].WorkFormatted)
	assert.True(t, rows[0].IsCurrentlyActive)
	assert.Equal(t, 0, rows[1].SessionCount)
	assert.Equal(t, "0h00", rows[1].WorkFormatted)
}

func TestWorkstationUtilization_Aggregates(t *testing.T) {
	repo := &fakeReportRepo{sessions: []models.ReportSessionRow{
		reportRow("marie", "A1", 100, 0, models.SessionStatusCompleted),
		reportRow("paul", "A1", 300, 0, models.SessionStatusActive),
		reportRow("marie", "A2", 240, 0, models.SessionStatusCompleted),
	}}
	svc := newReportFixture(repo)

	utils, err := svc.WorkstationUtilization(context.Background(), "2025-03-01", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, utils, 2)

	a1 := utils[0]
	assert.Equal(t, "A1", a1.Code)
	assert.Equal(t, 2, a1.SessionCount)
	assert.Equal(t, 2, a1.DistinctUsers)
	assert.Equal(t, 1, a1.CurrentlyActive)
	assert.InDelta(t, 200.0, a1.MeanWorkMinutes, 0.001)
	assert.InDelta(t, 200.0, a1.MedianWorkMinutes, 0.001)
	assert.Equal(t, 400, a1.TotalWorkMinutes)
}

func TestActiveSessions_FillsLiveTotals(t *testing.T) {
	sessionID := core.NewUUID()
	events := &fakeEventRepo{}
	events.AppendEvent(context.Background(), &models.TimeEvent{
		ID:        core.NewUUID(),
		SessionID: sessionID,
		EventType: "start",
		Timestamp: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local),
	})

	repo := &fakeReportRepo{active: []models.ActiveSessionRow{
		{SessionID: sessionID, UserID: uuid.New(), Username: "marie", Status: models.SessionStatusActive},
	}}
	svc := NewReportService(repo, events, 30, logging.NewLogger(logging.LogLevelError)).
		WithClock(func() time.Time { return time.Date(2025, 3, 10, 10, 30, 0, 0, time.Local) })

	rows, err := svc.ActiveSessions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 90, rows[0].WorkMinutes)
	assert.Equal(t, "1h30", rows[0].WorkFormatted)
}
