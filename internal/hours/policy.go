// Package hours decides whether the storefront is open.
//
// The policy is a pure predicate over a configured daily window and an
// instant; callers re-evaluate it as often as they like (the HTTP gate does
// so per request). All evaluation happens in the store's canonical zone,
// a fixed +03:30 offset with no DST, regardless of server locale.
package hours

import (
	"fmt"
	"time"

	"paperstore/pkg/models"
)

// Location is the canonical store zone (Tehran, fixed offset, no DST).
var Location = time.FixedZone("Asia/Tehran", 3*3600+30*60)

// Clock supplies the current instant. Production uses SystemClock; tests
// inject fixed instants.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the store zone
type SystemClock struct{}

// Now returns the current time in the store zone
func (SystemClock) Now() time.Time {
	return time.Now().In(Location)
}

// Schedule is the evaluable form of a persisted working-hours row.
// Minutes count from midnight; a schedule with Start > End never opens.
type Schedule struct {
	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`
	Active      bool `json:"active"`
}

// DefaultSchedule is used when no row is persisted or the stored row cannot
// be read: open 08:00-18:00.
func DefaultSchedule() Schedule {
	return Schedule{StartMinute: 8 * 60, EndMinute: 18 * 60, Active: true}
}

// FromModel converts a persisted row into an evaluable schedule
func FromModel(m *models.WorkingHours) Schedule {
	return Schedule{
		StartMinute: m.StartHour*60 + m.StartMinute,
		EndMinute:   m.EndHour*60 + m.EndMinute,
		Active:      m.IsActive,
	}
}

// MinuteOfDay returns the minute-of-day of t in the store zone
func MinuteOfDay(t time.Time) int {
	local := t.In(Location)
	return local.Hour()*60 + local.Minute()
}

// IsOpen reports whether the store accepts orders at the given instant.
// Both window bounds are inclusive: the opening and closing minutes count
// as open. Inactive schedules are always closed.
func IsOpen(s Schedule, now time.Time) bool {
	if !s.Active {
		return false
	}
	m := MinuteOfDay(now)
	return s.StartMinute <= m && m <= s.EndMinute
}

// Status is the evaluated state handed to the closed/open views
type Status struct {
	Open     bool     `json:"open"`
	Window   string   `json:"window"`
	Schedule Schedule `json:"schedule"`
}

// Evaluate computes the full status for an instant
func Evaluate(s Schedule, now time.Time) Status {
	return Status{
		Open:     IsOpen(s, now),
		Window:   Window(s),
		Schedule: s,
	}
}

// Window formats the configured window as "HH:MM–HH:MM" for display
func Window(s Schedule) string {
	return formatMinute(s.StartMinute) + "–" + formatMinute(s.EndMinute)
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
