package timeclock

import (
	"fmt"
	"time"
)

// Totals is the outcome of replaying one session's event log
type Totals struct {
	WorkMinutes  int `json:"work_minutes"`
	BreakMinutes int `json:"break_minutes"`
}

// Replay computes work and break minute totals from a session's event log.
//
// The function is pure: given the same events and the same now it always
// returns the same totals. now closes whichever interval is still open when
// the log has no terminal end event; callers pass the invocation instant so
// open sessions report live figures. For completed sessions now is unused.
//
// Each interval contributes whole minutes, truncated independently; sub-minute
// remainders never carry across intervals. Malformed adjacencies (duplicate
// start, break_start while already on break, ...) are skipped rather than
// propagated, and returned as anomaly descriptions for the caller to log.
func Replay(events []Event, now time.Time) (Totals, []string) {
	var totals Totals
	var anomalies []string
	var workOpenAt, breakOpenAt *time.Time

	for _, ev := range SortEvents(events) {
		at := ev.At
		switch ev.Type {
		case EventStart:
			if workOpenAt != nil || breakOpenAt != nil {
				anomalies = append(anomalies, fmt.Sprintf("duplicate start at %s ignored", at.Format(time.RFC3339)))
				continue
			}
			workOpenAt = &at

		case EventBreakStart:
			if breakOpenAt != nil {
				anomalies = append(anomalies, fmt.Sprintf("break_start at %s while already on break ignored", at.Format(time.RFC3339)))
				continue
			}
			if workOpenAt != nil {
				totals.WorkMinutes += wholeMinutes(*workOpenAt, at)
				workOpenAt = nil
			} else {
				anomalies = append(anomalies, fmt.Sprintf("break_start at %s with no open work interval", at.Format(time.RFC3339)))
			}
			breakOpenAt = &at

		case EventBreakEnd:
			if breakOpenAt == nil {
				anomalies = append(anomalies, fmt.Sprintf("break_end at %s with no open break ignored", at.Format(time.RFC3339)))
				continue
			}
			totals.BreakMinutes += wholeMinutes(*breakOpenAt, at)
			breakOpenAt = nil
			// work resumes immediately
			workOpenAt = &at

		case EventEnd:
			if workOpenAt != nil {
				totals.WorkMinutes += wholeMinutes(*workOpenAt, at)
				workOpenAt = nil
			}
			if breakOpenAt != nil {
				totals.BreakMinutes += wholeMinutes(*breakOpenAt, at)
				breakOpenAt = nil
			}

		default:
			anomalies = append(anomalies, fmt.Sprintf("unknown event type %q at %s ignored", ev.Type, at.Format(time.RFC3339)))
		}
	}

	// Session still open: close the live interval against now.
	if workOpenAt != nil {
		totals.WorkMinutes += wholeMinutes(*workOpenAt, now)
	}
	if breakOpenAt != nil {
		totals.BreakMinutes += wholeMinutes(*breakOpenAt, now)
	}

	return totals, anomalies
}

// wholeMinutes truncates the span between two instants to whole minutes,
// clamped at zero. Clock skew between writers can surface a negative span
// even after sorting (equal-second ties with sub-second drift); a negative
// contribution must never reach the totals.
func wholeMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// ElapsedMinutes is the wall-clock span of a session regardless of breaks
func ElapsedMinutes(start, end time.Time) int {
	return wholeMinutes(start, end)
}
