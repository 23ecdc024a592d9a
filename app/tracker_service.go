package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pointage/domain/core"
	"pointage/domain/timeclock"
	"pointage/internal/errors"
	"pointage/internal/logging"
	"pointage/models"
	"pointage/ports"
)

// TrackerService is the session state machine. Every mutation runs inside a
// single transaction: the status check, the event append and the session
// update commit or roll back together, so a retry racing a real request can
// never leave a half-written session.
type TrackerService struct {
	tx       ports.TxRunner
	sessions ports.SessionRepository
	events   ports.EventRepository
	stations ports.WorkstationRepository
	notifier ports.Notifier
	clock    func() time.Time
	log      *logging.Logger
}

// NewTrackerService creates the state machine service
func NewTrackerService(
	tx ports.TxRunner,
	sessions ports.SessionRepository,
	events ports.EventRepository,
	stations ports.WorkstationRepository,
	notifier ports.Notifier,
	log *logging.Logger,
) *TrackerService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &TrackerService{
		tx:       tx,
		sessions: sessions,
		events:   events,
		stations: stations,
		notifier: notifier,
		clock:    time.Now,
		log:      log,
	}
}

// WithClock overrides the time source. Tests inject a fixed clock here;
// production keeps time.Now.
func (s *TrackerService) WithClock(clock func() time.Time) *TrackerService {
	s.clock = clock
	return s
}

// SessionStatusView is the session part of a status response
type SessionStatusView struct {
	ID                uuid.UUID `json:"id"`
	StartTime         time.Time `json:"start_time"`
	TotalWorkMinutes  int       `json:"total_work_minutes"`
	TotalBreakMinutes int       `json:"total_break_minutes"`
	CurrentWorkTime   string    `json:"current_work_time"`
	CurrentBreakTime  string    `json:"current_break_time"`
}

// StatusResult is the full status payload
type StatusResult struct {
	Status      models.SessionStatus   `json:"status"`
	Message     string                 `json:"message"`
	Session     *SessionStatusView     `json:"session"`
	Workstation *models.WorkstationRef `json:"workstation"`
}

// StartResult is the outcome of a start or resume
type StartResult struct {
	SessionID   uuid.UUID             `json:"session_id"`
	Action      string                `json:"action"`
	Workstation models.WorkstationRef `json:"workstation"`
}

// BreakResult is the outcome of a break
type BreakResult struct {
	SessionID     uuid.UUID `json:"session_id"`
	Action        string    `json:"action"`
	WorkTimeSoFar string    `json:"work_time_so_far"`
}

// EndSummary recaps a completed day
type EndSummary struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalWorkTime  string    `json:"total_work_time"`
	TotalBreakTime string    `json:"total_break_time"`
	TotalDayTime   string    `json:"total_day_time"`
	WorkMinutes    int       `json:"work_minutes"`
	BreakMinutes   int       `json:"break_minutes"`
}

// EndResult is the outcome of ending a session
type EndResult struct {
	SessionID uuid.UUID  `json:"session_id"`
	Action    string     `json:"action"`
	Summary   EndSummary `json:"summary"`
}

// HistoryEntry is one row of a user's session history
type HistoryEntry struct {
	SessionID       uuid.UUID            `json:"session_id"`
	Date            string               `json:"date"`
	Status          models.SessionStatus `json:"status"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         *time.Time           `json:"end_time,omitempty"`
	WorkMinutes     int                  `json:"work_minutes"`
	BreakMinutes    int                  `json:"break_minutes"`
	WorkFormatted   string               `json:"work_formatted"`
	BreakFormatted  string               `json:"break_formatted"`
	WorkstationCode string               `json:"workstation_code"`
	WorkstationName string               `json:"workstation_name"`
}

// GetStatus reports the user's current session state. Read-only and safe to
// poll; live totals are replayed against the invocation instant.
func (s *TrackerService) GetStatus(ctx context.Context, principal models.Principal) (*StatusResult, error) {
	now := s.clock()
	date := core.DateOf(now).String()

	session, err := s.sessions.GetLatestSession(ctx, principal.ID, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up today's session")
	}

	if session == nil {
		result := &StatusResult{
			Status:  models.SessionStatusNotStarted,
			Message: "No session started today",
		}
		if principal.WorkstationID != nil {
			if ws, err := s.stations.GetByID(ctx, *principal.WorkstationID); err == nil {
				result.Workstation = &models.WorkstationRef{Code: ws.Code, Name: ws.Name}
			}
		}
		return result, nil
	}

	ws, err := s.stations.GetByID(ctx, session.WorkstationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve session workstation")
	}

	view := &SessionStatusView{ID: session.ID, StartTime: session.StartTime}
	message := "Session completed for today"

	if session.Status.IsOpen() {
		totals := s.replaySession(ctx, session.ID, now)
		view.TotalWorkMinutes = totals.WorkMinutes
		view.TotalBreakMinutes = totals.BreakMinutes
		if session.Status == models.SessionStatusOnBreak {
			message = "On break"
		} else {
			message = "Session active"
		}
	} else {
		// Completed: the cached totals are authoritative, no replay
		view.TotalWorkMinutes = session.TotalWorkMinutes
		view.TotalBreakMinutes = session.TotalBreakMinutes
	}
	view.CurrentWorkTime = timeclock.FormatDuration(view.TotalWorkMinutes)
	view.CurrentBreakTime = timeclock.FormatDuration(view.TotalBreakMinutes)

	return &StatusResult{
		Status:      session.Status,
		Message:     message,
		Session:     view,
		Workstation: &models.WorkstationRef{Code: ws.Code, Name: ws.Name},
	}, nil
}

// Start opens a new session, or resumes one that is on break. Resuming
// keeps the session's original workstation even if a different code was
// scanned; the response reports the actual station so clients can surface
// the mismatch.
func (s *TrackerService) Start(ctx context.Context, principal models.Principal, workstationCode string) (*StartResult, error) {
	now := s.clock()
	date := core.DateOf(now).String()

	var result *StartResult
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		open, err := s.sessions.GetOpenSession(ctx, principal.ID, date)
		if err != nil {
			return errors.Wrap(err, "failed to look up open session")
		}

		if open != nil {
			if open.Status == models.SessionStatusActive {
				return errors.SessionAlreadyActive()
			}
			// on_break: treat as resume
			if err := s.appendEvent(ctx, open.ID, timeclock.EventBreakEnd, now); err != nil {
				return err
			}
			if err := s.sessions.UpdateStatus(ctx, open.ID, models.SessionStatusActive); err != nil {
				return errors.Wrap(err, "failed to resume session")
			}
			ws, err := s.stations.GetByID(ctx, open.WorkstationID)
			if err != nil {
				return errors.Wrap(err, "failed to resolve session workstation")
			}
			result = &StartResult{
				SessionID:   open.ID,
				Action:      "resume",
				Workstation: models.WorkstationRef{Code: ws.Code, Name: ws.Name},
			}
			return nil
		}

		ws, err := s.resolveWorkstation(ctx, principal, workstationCode)
		if err != nil {
			return err
		}

		session := &models.WorkSession{
			ID:            core.NewUUID(),
			UserID:        principal.ID,
			WorkstationID: ws.ID,
			Date:          date,
			Status:        models.SessionStatusActive,
			StartTime:     now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.sessions.CreateSession(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}
		if err := s.appendEvent(ctx, session.ID, timeclock.EventStart, now); err != nil {
			return err
		}
		result = &StartResult{
			SessionID:   session.ID,
			Action:      "start",
			Workstation: models.WorkstationRef{Code: ws.Code, Name: ws.Name},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(principal, result.SessionID, result.Action, models.SessionStatusActive, result.Workstation.Code, now)
	return result, nil
}

// Break puts the active session on break and reports work time so far
func (s *TrackerService) Break(ctx context.Context, principal models.Principal) (*BreakResult, error) {
	now := s.clock()
	date := core.DateOf(now).String()

	var result *BreakResult
	var workstationCode string
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		open, err := s.sessions.GetOpenSession(ctx, principal.ID, date)
		if err != nil {
			return errors.Wrap(err, "failed to look up open session")
		}
		if open == nil || open.Status != models.SessionStatusActive {
			return errors.NoActiveSession()
		}

		if err := s.appendEvent(ctx, open.ID, timeclock.EventBreakStart, now); err != nil {
			return err
		}
		if err := s.sessions.UpdateStatus(ctx, open.ID, models.SessionStatusOnBreak); err != nil {
			return errors.Wrap(err, "failed to set session on break")
		}

		totals := s.replaySession(ctx, open.ID, now)
		if ws, err := s.stations.GetByID(ctx, open.WorkstationID); err == nil {
			workstationCode = ws.Code
		}
		result = &BreakResult{
			SessionID:     open.ID,
			Action:        "break",
			WorkTimeSoFar: timeclock.FormatDuration(totals.WorkMinutes),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(principal, result.SessionID, "break", models.SessionStatusOnBreak, workstationCode, now)
	return result, nil
}

// End closes the session. A session ended while on break gets its break
// closed in the same transaction, with the same authoritative now, so the
// folded break_end and end events never skew apart.
func (s *TrackerService) End(ctx context.Context, principal models.Principal) (*EndResult, error) {
	now := s.clock()
	date := core.DateOf(now).String()

	var result *EndResult
	var workstationCode string
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		open, err := s.sessions.GetOpenSession(ctx, principal.ID, date)
		if err != nil {
			return errors.Wrap(err, "failed to look up open session")
		}
		if open == nil || !open.Status.IsOpen() {
			return errors.NoActiveSession()
		}

		if open.Status == models.SessionStatusOnBreak {
			if err := s.appendEvent(ctx, open.ID, timeclock.EventBreakEnd, now); err != nil {
				return err
			}
		}
		if err := s.appendEvent(ctx, open.ID, timeclock.EventEnd, now); err != nil {
			return err
		}

		totals := s.replaySession(ctx, open.ID, now)
		if err := s.sessions.CompleteSession(ctx, open.ID, now, totals.WorkMinutes, totals.BreakMinutes); err != nil {
			return errors.Wrap(err, "failed to complete session")
		}

		if ws, err := s.stations.GetByID(ctx, open.WorkstationID); err == nil {
			workstationCode = ws.Code
		}
		result = &EndResult{
			SessionID: open.ID,
			Action:    "end",
			Summary: EndSummary{
				StartTime:      open.StartTime,
				EndTime:        now,
				TotalWorkTime:  timeclock.FormatDuration(totals.WorkMinutes),
				TotalBreakTime: timeclock.FormatDuration(totals.BreakMinutes),
				TotalDayTime:   timeclock.FormatDuration(timeclock.ElapsedMinutes(open.StartTime, now)),
				WorkMinutes:    totals.WorkMinutes,
				BreakMinutes:   totals.BreakMinutes,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(principal, result.SessionID, "end", models.SessionStatusCompleted, workstationCode, now)
	return result, nil
}

// History lists the user's sessions most-recent-first. Completed sessions
// use their cached totals; a still-open session is replayed the same way
// GetStatus does.
func (s *TrackerService) History(ctx context.Context, principal models.Principal, limit, offset int) ([]HistoryEntry, error) {
	now := s.clock()

	sessions, err := s.sessions.ListUserSessions(ctx, principal.ID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	entries := make([]HistoryEntry, 0, len(sessions))
	for _, session := range sessions {
		work, brk := session.TotalWorkMinutes, session.TotalBreakMinutes
		if session.Status.IsOpen() {
			totals := s.replaySession(ctx, session.ID, now)
			work, brk = totals.WorkMinutes, totals.BreakMinutes
		}
		entries = append(entries, HistoryEntry{
			SessionID:       session.ID,
			Date:            session.Date,
			Status:          session.Status,
			StartTime:       session.StartTime,
			EndTime:         session.EndTime,
			WorkMinutes:     work,
			BreakMinutes:    brk,
			WorkFormatted:   timeclock.FormatDuration(work),
			BreakFormatted:  timeclock.FormatDuration(brk),
			WorkstationCode: session.WorkstationCode,
			WorkstationName: session.WorkstationName,
		})
	}
	return entries, nil
}

// resolveWorkstation picks the scanned station, or falls back to the user's
// assigned one
func (s *TrackerService) resolveWorkstation(ctx context.Context, principal models.Principal, code string) (*models.Workstation, error) {
	if code != "" {
		ws, err := s.stations.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !ws.IsActive {
			return nil, errors.WorkstationNotFound(code)
		}
		return ws, nil
	}
	if principal.WorkstationID == nil {
		return nil, errors.NoWorkstation()
	}
	ws, err := s.stations.GetByID(ctx, *principal.WorkstationID)
	if err != nil {
		return nil, errors.NoWorkstation()
	}
	if !ws.IsActive {
		return nil, errors.NoWorkstation()
	}
	return ws, nil
}

func (s *TrackerService) appendEvent(ctx context.Context, sessionID uuid.UUID, eventType timeclock.EventType, at time.Time) error {
	event := &models.TimeEvent{
		ID:        core.NewUUID(),
		SessionID: sessionID,
		EventType: eventType,
		Timestamp: at,
		CreatedAt: at,
	}
	if err := s.events.AppendEvent(ctx, event); err != nil {
		return errors.Wrap(err, "failed to append event")
	}
	return nil
}

// replaySession runs the accounting engine over a session's log. Anomalies
// are an operator concern, not a caller error: this path feeds read-only
// displays, so it logs and keeps going.
func (s *TrackerService) replaySession(ctx context.Context, sessionID uuid.UUID, now time.Time) timeclock.Totals {
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

// broadcast is fire-and-forget; the notifier can never fail the mutation
func (s *TrackerService) broadcast(principal models.Principal, sessionID uuid.UUID, action string, status models.SessionStatus, workstation string, at time.Time) {
	s.notifier.SessionChanged(models.SessionChangedEvent{
		SessionID:   sessionID,
		UserID:      principal.ID,
		Username:    principal.Username,
		Action:      action,
		Status:      status,
		Workstation: workstation,
		Timestamp:   at,
	})
}
