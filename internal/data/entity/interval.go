package entity

import (
	"math"
	"time"
)

// Interval is a half-open time range [Start, End). The end instant itself is
// not included, so a booking ending exactly when another begins does not
// overlap it. Inverted or zero-length ranges are rejected by request
// validation and never reach this type.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Overlaps reports whether two half-open intervals share any instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// ContainsDay reports whether the interval touches any portion of the
// calendar day containing the given instant.
func (i Interval) ContainsDay(day time.Time) bool {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	// The dropoff day counts as occupied even when the interval ends mid-day,
	// so compare against the inclusive day range rather than half-open.
	return i.Start.Before(dayEnd) && !i.End.Before(dayStart)
}

// Days enumerates every calendar day touched by the interval, inclusive of
// both the pickup and dropoff days, as midnights in the interval's location.
func (i Interval) Days() []time.Time {
	first := time.Date(i.Start.Year(), i.Start.Month(), i.Start.Day(), 0, 0, 0, 0, i.Start.Location())
	last := time.Date(i.End.Year(), i.End.Month(), i.End.Day(), 0, 0, 0, 0, i.End.Location())

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WholeDays returns the billing duration: the interval length rounded up to
// whole days, never less than one.
func (i Interval) WholeDays() int {
	days := int(math.Ceil(i.End.Sub(i.Start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Duration returns the exact span of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
