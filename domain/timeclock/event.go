package timeclock

import (
	"sort"
	"time"
)

// EventType identifies a session transition recorded in the event log
type EventType string

const (
	EventStart      EventType = "start"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
	EventEnd        EventType = "end"
)

// IsValid reports whether the event type is one of the four known transitions
func (t EventType) IsValid() bool {
	switch t {
	case EventStart, EventBreakStart, EventBreakEnd, EventEnd:
		return true
	}
	return false
}

// Event is an immutable timestamped fact from a session's log.
// Only the fields the replay needs live here; persistence identity
// stays in the models layer.
type Event struct {
	Type EventType
	At   time.Time
}

// SortEvents orders events ascending by timestamp. Timestamps are wall-clock
// values written by whichever process handled each request, so insertion order
// is not trusted; replay always sorts first. The sort is stable so events
// sharing a timestamp (break_end folded into end) keep their log order.
func SortEvents(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})
	return sorted
}
