package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointage/domain/core"
	"pointage/domain/timeclock"
	"pointage/internal/config"
	apperrors "pointage/internal/errors"
	"pointage/models"
)

type repoFixture struct {
	db       *sqlx.DB
	user     *models.User
	station  *models.Workstation
	sessions *SessionRepositoryImpl
	events   *EventRepositoryImpl
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewMigrator(db).Up(context.Background()))

	now := time.Now()
	station := &models.Workstation{
		ID: core.NewUUID(), Code: "WS-1", Name: "Atelier 1",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewWorkstationRepository(db).Create(context.Background(), station))

	user := &models.User{
		ID: core.NewUUID(), Username: "alice", PasswordHash: "x",
		FullName: "Alice Martin", Role: models.RoleEmployee,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return &repoFixture{
		db:       db,
		user:     user,
		station:  station,
		sessions: NewSessionRepository(db).(*SessionRepositoryImpl),
		events:   NewEventRepository(db).(*EventRepositoryImpl),
	}
}

func (f *repoFixture) newSession(date string, start time.Time) *models.WorkSession {
	return &models.WorkSession{
		ID:            core.NewUUID(),
		UserID:        f.user.ID,
		WorkstationID: f.station.ID,
		Date:          date,
		Status:        models.SessionStatusActive,
		StartTime:     start,
		CreatedAt:     start,
		UpdatedAt:     start,
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	session := f.newSession("2025-03-10", start)
	require.NoError(t, f.sessions.CreateSession(ctx, session))

	open, err := f.sessions.GetOpenSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, session.ID, open.ID)
	assert.Equal(t, models.SessionStatusActive, open.Status)
	assert.Equal(t, start.Unix(), open.StartTime.Unix())

	require.NoError(t, f.sessions.UpdateStatus(ctx, session.ID, models.SessionStatusOnBreak))
	open, err = f.sessions.GetOpenSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusOnBreak, open.Status)

	end := start.Add(8 * time.Hour)
	require.NoError(t, f.sessions.CompleteSession(ctx, session.ID, end, 450, 30))

	open, err = f.sessions.GetOpenSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, open, "completed session should not count as open")

	latest, err := f.sessions.GetLatestSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, models.SessionStatusCompleted, latest.Status)
	assert.Equal(t, 450, latest.TotalWorkMinutes)
	assert.Equal(t, 30, latest.TotalBreakMinutes)
	require.NotNil(t, latest.EndTime)
	assert.Equal(t, end.Unix(), latest.EndTime.Unix())
}

func TestDuplicateOpenSessionRejected(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	require.NoError(t, f.sessions.CreateSession(ctx, f.newSession("2025-03-10", start)))

	err := f.sessions.CreateSession(ctx, f.newSession("2025-03-10", start.Add(time.Minute)))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSessionAlreadyActive, apperrors.GetCode(err))

	// Other days are unaffected
	require.NoError(t, f.sessions.CreateSession(ctx, f.newSession("2025-03-11", start.AddDate(0, 0, 1))))
}

func TestSameDayRestartAfterCompletion(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	first := f.newSession("2025-03-10", start)
	require.NoError(t, f.sessions.CreateSession(ctx, first))
	require.NoError(t, f.sessions.CompleteSession(ctx, first.ID, start.Add(4*time.Hour), 240, 0))

	second := f.newSession("2025-03-10", start.Add(5*time.Hour))
	require.NoError(t, f.sessions.CreateSession(ctx, second))

	latest, err := f.sessions.GetLatestSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestEventLogOrdering(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	session := f.newSession("2025-03-10", start)
	require.NoError(t, f.sessions.CreateSession(ctx, session))

	// Append out of chronological order; the list must come back sorted
	times := []struct {
		typ timeclock.EventType
		at  time.Time
	}{
		{timeclock.EventBreakStart, start.Add(3 * time.Hour)},
		{timeclock.EventStart, start},
		{timeclock.EventBreakEnd, start.Add(3*time.Hour + 30*time.Minute)},
	}
	for _, e := range times {
		require.NoError(t, f.events.AppendEvent(ctx, &models.TimeEvent{
			ID: core.NewUUID(), SessionID: session.ID,
			EventType: e.typ, Timestamp: e.at, CreatedAt: e.at,
		}))
	}

	events, err := f.events.ListSessionEvents(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, timeclock.EventStart, events[0].EventType)
	assert.Equal(t, timeclock.EventBreakStart, events[1].EventType)
	assert.Equal(t, timeclock.EventBreakEnd, events[2].EventType)
}

func TestTxRollback(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	runner := NewTxRunner(f.db)

	err := runner.InTx(ctx, func(ctx context.Context) error {
		if err := f.sessions.CreateSession(ctx, f.newSession("2025-03-10", start)); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.EqualError(t, err, "boom")

	open, err := f.sessions.GetOpenSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, open, "rolled-back session must not persist")
}

func TestTxCommitVisible(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	runner := NewTxRunner(f.db)

	session := f.newSession("2025-03-10", start)
	err := runner.InTx(ctx, func(ctx context.Context) error {
		if err := f.sessions.CreateSession(ctx, session); err != nil {
			return err
		}
		return f.events.AppendEvent(ctx, &models.TimeEvent{
			ID: core.NewUUID(), SessionID: session.ID,
			EventType: timeclock.EventStart, Timestamp: start, CreatedAt: start,
		})
	})
	require.NoError(t, err)

	open, err := f.sessions.GetOpenSession(ctx, f.user.ID, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, open)

	events, err := f.events.ListSessionEvents(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestListUserSessions(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	for day := 0; day < 3; day++ {
		s := f.newSession(start.AddDate(0, 0, day).Format(core.DateFormat), start.AddDate(0, 0, day))
		require.NoError(t, f.sessions.CreateSession(ctx, s))
		require.NoError(t, f.sessions.CompleteSession(ctx, s.ID, s.StartTime.Add(8*time.Hour), 480, 0))
	}

	sessions, err := f.sessions.ListUserSessions(ctx, f.user.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2025-03-12", sessions[0].Date)
	assert.Equal(t, "2025-03-11", sessions[1].Date)
	assert.Equal(t, "WS-1", sessions[0].WorkstationCode)

	rest, err := f.sessions.ListUserSessions(ctx, f.user.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "2025-03-10", rest[0].Date)
}
