package models

import (
	"time"

	"github.com/google/uuid"

	"pointage/domain/timeclock"
)

// SessionStatus represents the current state of a work session
type SessionStatus string

const (
	// SessionStatusNotStarted is virtual: no row exists for the day yet
	SessionStatusNotStarted SessionStatus = "not_started"
	SessionStatusActive     SessionStatus = "active"
	SessionStatusOnBreak    SessionStatus = "on_break"
	SessionStatusCompleted  SessionStatus = "completed"
)

// IsOpen reports whether the session still accepts transitions
func (s SessionStatus) IsOpen() bool {
	return s == SessionStatusActive || s == SessionStatusOnBreak
}

// WorkSession is one user's work day at one workstation.
// TotalWorkMinutes/TotalBreakMinutes are authoritative only once the session
// is completed; while open they are advisory and recomputed on read.
type WorkSession struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	UserID            uuid.UUID     `json:"user_id" db:"user_id"`
	WorkstationID     uuid.UUID     `json:"workstation_id" db:"workstation_id"`
	Date              string        `json:"date" db:"date"`
	Status            SessionStatus `json:"status" db:"status"`
	StartTime         time.Time     `json:"start_time" db:"start_time"`
	EndTime           *time.Time    `json:"end_time,omitempty" db:"end_time"`
	TotalWorkMinutes  int           `json:"total_work_minutes" db:"total_work_minutes"`
	TotalBreakMinutes int           `json:"total_break_minutes" db:"total_break_minutes"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// TimeEvent is one append-only entry in a session's transition log
type TimeEvent struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	SessionID uuid.UUID           `json:"session_id" db:"session_id"`
	EventType timeclock.EventType `json:"event_type" db:"event_type"`
	Timestamp time.Time           `json:"timestamp" db:"timestamp"`
	Notes     *string             `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
}

// ReplayEvent converts the row into the shape the accounting engine consumes
func (e TimeEvent) ReplayEvent() timeclock.Event {
	return timeclock.Event{Type: e.EventType, At: e.Timestamp}
}

// ReplayEvents converts a slice of rows for the accounting engine
func ReplayEvents(events []TimeEvent) []timeclock.Event {
	out := make([]timeclock.Event, len(events))
	for i, e := range events {
		out[i] = e.ReplayEvent()
	}
	return out
}

// SessionWithWorkstation joins a session with its workstation for listings
type SessionWithWorkstation struct {
	WorkSession
	WorkstationCode string `json:"workstation_code" db:"workstation_code"`
	WorkstationName string `json:"workstation_name" db:"workstation_name"`
}

// SessionChangedEvent is broadcast to supervisor dashboards after every
// successful state transition. Delivery is fire-and-forget.
type SessionChangedEvent struct {
	SessionID   uuid.UUID     `json:"session_id"`
	UserID      uuid.UUID     `json:"user_id"`
	Username    string        `json:"username"`
	Action      string        `json:"action"`
	Status      SessionStatus `json:"status"`
	Workstation string        `json:"workstation"`
	Timestamp   time.Time     `json:"timestamp"`
}
