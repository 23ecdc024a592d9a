package timeclock

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.Local)
}

func TestReplay_OpenSession(t *testing.T) {
	events := []Event{{Type: EventStart, At: at(9, 0)}}

	totals, anomalies := Replay(events, at(9, 30))

	if totals.WorkMinutes != 30 {
		t.Errorf("Expected 30 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 0 {
		t.Errorf("Expected 0 break minutes, got %d", totals.BreakMinutes)
	}
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies, got %v", anomalies)
	}
}

func TestReplay_OpenSessionAfterBreak(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(10, 0)},
		{Type: EventBreakEnd, At: at(10, 15)},
	}

	totals, _ := Replay(events, at(10, 45))

	// 09:00-10:00 work, 10:00-10:15 break, 10:15-10:45 live work
	if totals.WorkMinutes != 60 {
		t.Errorf("Expected 60 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 15 {
		t.Errorf("Expected 15 break minutes, got %d", totals.BreakMinutes)
	}
}

func TestReplay_CompletedSession(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(12, 0)},
		{Type: EventBreakEnd, At: at(12, 30)},
		{Type: EventEnd, At: at(17, 0)},
	}

	// now is after the end event and must not leak into the totals
	totals, _ := Replay(events, at(23, 0))

	if totals.WorkMinutes != 450 {
		t.Errorf("Expected 450 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 30 {
		t.Errorf("Expected 30 break minutes, got %d", totals.BreakMinutes)
	}

	// work + break accounts for the whole day with no gaps
	elapsed := ElapsedMinutes(at(9, 0), at(17, 0))
	if totals.WorkMinutes+totals.BreakMinutes != elapsed {
		t.Errorf("Expected work+break to equal elapsed %d, got %d",
			elapsed, totals.WorkMinutes+totals.BreakMinutes)
	}
}

func TestReplay_EndWhileOnBreak(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(11, 0)},
		{Type: EventEnd, At: at(11, 20)},
	}

	totals, anomalies := Replay(events, at(12, 0))

	if totals.WorkMinutes != 120 {
		t.Errorf("Expected 120 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 20 {
		t.Errorf("Expected 20 break minutes, got %d", totals.BreakMinutes)
	}
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies, got %v", anomalies)
	}
}

func TestReplay_OpenBreakCountsAgainstNow(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(10, 0)},
	}

	totals, _ := Replay(events, at(10, 40))

	if totals.WorkMinutes != 60 {
		t.Errorf("Expected 60 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 40 {
		t.Errorf("Expected 40 break minutes, got %d", totals.BreakMinutes)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(8, 12)},
		{Type: EventBreakStart, At: at(10, 47)},
		{Type: EventBreakEnd, At: at(11, 3)},
	}
	now := at(14, 26)

	first, _ := Replay(events, now)
	second, _ := Replay(events, now)

	if first != second {
		t.Errorf("Replay not deterministic: %+v vs %+v", first, second)
	}
}

func TestReplay_MonotonicUnderLaterNow(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(10, 30)},
	}

	earlier, _ := Replay(events, at(10, 45))
	later, _ := Replay(events, at(11, 15))

	if later.WorkMinutes < earlier.WorkMinutes {
		t.Errorf("Work minutes decreased with later now: %d -> %d", earlier.WorkMinutes, later.WorkMinutes)
	}
	if later.BreakMinutes < earlier.BreakMinutes {
		t.Errorf("Break minutes decreased with later now: %d -> %d", earlier.BreakMinutes, later.BreakMinutes)
	}
}

func TestReplay_SortsOutOfOrderInput(t *testing.T) {
	events := []Event{
		{Type: EventBreakEnd, At: at(10, 15)},
		{Type: EventStart, At: at(9, 0)},
		{Type: EventBreakStart, At: at(10, 0)},
	}

	totals, anomalies := Replay(events, at(10, 45))

	if totals.WorkMinutes != 60 || totals.BreakMinutes != 15 {
		t.Errorf("Expected {60 15} after sorting, got %+v", totals)
	}
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies after sorting, got %v", anomalies)
	}
}

func TestReplay_TruncatesEachIntervalIndependently(t *testing.T) {
	sec := func(hour, min, s int) time.Time {
		return time.Date(2025, 3, 10, hour, min, s, 0, time.Local)
	}
	events := []Event{
		{Type: EventStart, At: sec(9, 0, 0)},
		{Type: EventBreakStart, At: sec(9, 10, 45)}, // 10m45s -> 10
		{Type: EventBreakEnd, At: sec(9, 15, 0)},
		{Type: EventEnd, At: sec(9, 25, 50)}, // 10m50s -> 10
	}

	totals, _ := Replay(events, sec(23, 0, 0))

	// 45s + 50s of remainder never merge into an extra minute
	if totals.WorkMinutes != 20 {
		t.Errorf("Expected 20 work minutes with independent truncation, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 4 {
		t.Errorf("Expected 4 break minutes, got %d", totals.BreakMinutes)
	}
}

func TestReplay_MalformedAdjacency(t *testing.T) {
	tests := []struct {
		name          string
		events        []Event
		now           time.Time
		wantWork      int
		wantBreak     int
		wantAnomalies int
	}{
		{
			name: "double break_start",
			events: []Event{
				{Type: EventStart, At: at(9, 0)},
				{Type: EventBreakStart, At: at(10, 0)},
				{Type: EventBreakStart, At: at(10, 5)},
				{Type: EventBreakEnd, At: at(10, 15)},
			},
			now:           at(10, 45),
			wantWork:      90,
			wantBreak:     15,
			wantAnomalies: 1,
		},
		{
			name: "break_end without break",
			events: []Event{
				{Type: EventStart, At: at(9, 0)},
				{Type: EventBreakEnd, At: at(9, 30)},
			},
			now:           at(10, 0),
			wantWork:      60,
			wantBreak:     0,
			wantAnomalies: 1,
		},
		{
			name: "duplicate start",
			events: []Event{
				{Type: EventStart, At: at(9, 0)},
				{Type: EventStart, At: at(9, 30)},
			},
			now:           at(10, 0),
			wantWork:      60,
			wantBreak:     0,
			wantAnomalies: 1,
		},
		{
			name: "break_start with no start",
			events: []Event{
				{Type: EventBreakStart, At: at(9, 0)},
				{Type: EventBreakEnd, At: at(9, 20)},
			},
			now:           at(9, 40),
			wantWork:      20,
			wantBreak:     20,
			wantAnomalies: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, anomalies := Replay(tt.events, tt.now)
			if totals.WorkMinutes != tt.wantWork {
				t.Errorf("Expected %d work minutes, got %d", tt.wantWork, totals.WorkMinutes)
			}
			if totals.BreakMinutes != tt.wantBreak {
				t.Errorf("Expected %d break minutes, got %d", tt.wantBreak, totals.BreakMinutes)
			}
			if len(anomalies) != tt.wantAnomalies {
				t.Errorf("Expected %d anomalies, got %d: %v", tt.wantAnomalies, len(anomalies), anomalies)
			}
		})
	}
}

func TestReplay_NegativeIntervalClampsToZero(t *testing.T) {
	// Sub-second drift: break_end carries an earlier wall-clock value than
	// break_start at the same second, surviving the sort as a negative span.
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	bs := time.Date(2025, 3, 10, 10, 0, 0, 900_000_000, time.Local)
	be := time.Date(2025, 3, 10, 10, 0, 0, 100_000_000, time.Local)

	totals, _ := Replay([]Event{
		{Type: EventStart, At: start},
		{Type: EventBreakStart, At: bs},
		{Type: EventBreakEnd, At: be},
	}, time.Date(2025, 3, 10, 10, 30, 0, 0, time.Local))

	if totals.BreakMinutes != 0 {
		t.Errorf("Expected clamped break of 0 minutes, got %d", totals.BreakMinutes)
	}
	if totals.WorkMinutes < 0 {
		t.Errorf("Work minutes went negative: %d", totals.WorkMinutes)
	}
}

func TestReplay_EmptyLog(t *testing.T) {
	totals, anomalies := Replay(nil, at(12, 0))

	if totals.WorkMinutes != 0 || totals.BreakMinutes != 0 {
		t.Errorf("Expected zero totals for empty log, got %+v", totals)
	}
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies for empty log, got %v", anomalies)
	}
}

func TestReplay_MultipleBreaksAccumulate(t *testing.T) {
	events := []Event{
		{Type: EventStart, At: at(8, 0)},
		{Type: EventBreakStart, At: at(10, 0)},
		{Type: EventBreakEnd, At: at(10, 10)},
		{Type: EventBreakStart, At: at(12, 0)},
		{Type: EventBreakEnd, At: at(12, 45)},
		{Type: EventEnd, At: at(16, 0)},
	}

	totals, _ := Replay(events, at(23, 0))

	// 120 + 110 + 195 work, 10 + 45 break
	if totals.WorkMinutes != 425 {
		t.Errorf("Expected 425 work minutes, got %d", totals.WorkMinutes)
	}
	if totals.BreakMinutes != 55 {
		t.Errorf("Expected 55 break minutes, got %d", totals.BreakMinutes)
	}
}
