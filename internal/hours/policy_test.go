package hours

import (
	"testing"
	"time"

	"paperstore/pkg/models"
)

// at builds an instant at the given minute-of-day in the store zone.
func at(minute int) time.Time {
	return time.Date(2025, 3, 10, minute/60, minute%60, 0, 0, Location)
}

func TestIsOpenInactiveAlwaysClosed(t *testing.T) {
	s := Schedule{StartMinute: 0, EndMinute: 1439, Active: false}
	for _, minute := range []int{0, 480, 600, 1080, 1439} {
		if IsOpen(s, at(minute)) {
			t.Errorf("IsOpen at minute %d = true for inactive schedule, want false", minute)
		}
	}
}

func TestIsOpenWindow(t *testing.T) {
	// 08:00-18:00
	s := Schedule{StartMinute: 480, EndMinute: 1080, Active: true}

	tests := []struct {
		minute int
		want   bool
	}{
		{0, false},
		{479, false},
		{480, true}, // opening minute is inclusive
		{600, true}, // 10:00
		{1079, true},
		{1080, true}, // closing minute is inclusive
		{1081, false},
		{1200, false}, // 20:00
		{1439, false},
	}

	for _, tt := range tests {
		if got := IsOpen(s, at(tt.minute)); got != tt.want {
			t.Errorf("IsOpen at minute %d = %v, want %v", tt.minute, got, tt.want)
		}
	}
}

func TestIsOpenMalformedWindowNeverOpens(t *testing.T) {
	// Start after end is stored as-is and never evaluates open.
	s := Schedule{StartMinute: 1080, EndMinute: 480, Active: true}
	for _, minute := range []int{0, 480, 600, 1080, 1439} {
		if IsOpen(s, at(minute)) {
			t.Errorf("IsOpen at minute %d = true for start>end schedule, want false", minute)
		}
	}
}

func TestIsOpenUsesStoreZone(t *testing.T) {
	s := Schedule{StartMinute: 480, EndMinute: 1080, Active: true}

	// 06:30 UTC is 10:00 in the store zone (+03:30): open.
	utc := time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)
	if !IsOpen(s, utc) {
		t.Error("IsOpen(06:30 UTC) = false, want true (10:00 store time)")
	}

	// 16:31 UTC is 20:01 in the store zone: closed.
	utc = time.Date(2025, 3, 10, 16, 31, 0, 0, time.UTC)
	if IsOpen(s, utc) {
		t.Error("IsOpen(16:31 UTC) = true, want false (20:01 store time)")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		s    Schedule
		want string
	}{
		{Schedule{StartMinute: 480, EndMinute: 1080}, "08:00–18:00"},
		{Schedule{StartMinute: 545, EndMinute: 1272}, "09:05–21:12"},
		{Schedule{StartMinute: 0, EndMinute: 1439}, "00:00–23:59"},
	}

	for _, tt := range tests {
		if got := Window(tt.s); got != tt.want {
			t.Errorf("Window(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestFromModel(t *testing.T) {
	m := &models.WorkingHours{
		StartHour: 8, StartMinute: 0,
		EndHour: 18, EndMinute: 30,
		IsActive: true,
	}

	s := FromModel(m)
	if s.StartMinute != 480 || s.EndMinute != 1110 || !s.Active {
		t.Errorf("FromModel = %+v, want {480 1110 true}", s)
	}
}

func TestEvaluate(t *testing.T) {
	s := Schedule{StartMinute: 480, EndMinute: 1080, Active: true}

	st := Evaluate(s, at(600))
	if !st.Open || st.Window != "08:00–18:00" {
		t.Errorf("Evaluate(10:00) = %+v, want open with 08:00–18:00 window", st)
	}

	st = Evaluate(s, at(1200))
	if st.Open {
		t.Errorf("Evaluate(20:00) = %+v, want closed", st)
	}
}
