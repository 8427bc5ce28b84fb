// Package window computes the canonical check-in window containing a
// reference instant: half-open, sized in minutes, floor-aligned to a grid
// anchored at midnight of the instant's local day.
package window

import (
	"time"

	"everyday-planner/internal/apperr"
)

// MaxMinutes bounds the window size to half a day.
const MaxMinutes = 720

// Window is a half-open [Start, End) time interval.
type Window struct {
	Start time.Time `json:"windowStart"`
	End   time.Time `json:"windowEnd"`
}

// Date returns the window's calendar date (midnight UTC), taken from the
// window start.
func (w Window) Date() time.Time {
	return time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve returns the window of the given size containing reference. The
// result depends only on the inputs, so repeated calls with the same
// arguments yield the same window.
func Resolve(windowMinutes int, reference time.Time) (Window, error) {
	if windowMinutes < 1 || windowMinutes > MaxMinutes {
		return Window{}, apperr.Validationf("windowMinutes must be between 1 and %d", MaxMinutes)
	}

	ref := reference.Truncate(time.Minute)
	minuteOfDay := ref.Hour()*60 + ref.Minute()
	startMinute := (minuteOfDay / windowMinutes) * windowMinutes
	endMinute := startMinute + windowMinutes

	// Wall-clock construction: adding a duration to midnight drifts by the
	// offset change on DST days.
	return Window{
		Start: wallClock(ref, startMinute),
		End:   wallClock(ref, endMinute),
	}, nil
}

func wallClock(day time.Time, minuteOfDay int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		minuteOfDay/60, minuteOfDay%60, 0, 0, day.Location())
}
