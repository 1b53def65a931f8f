package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day int, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	base := NewInterval(date(10, 10), date(12, 10))

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", NewInterval(date(10, 10), date(12, 10)), true},
		{"contained", NewInterval(date(10, 12), date(11, 12)), true},
		{"overlaps start", NewInterval(date(9, 10), date(10, 12)), true},
		{"overlaps end", NewInterval(date(12, 9), date(13, 10)), true},
		{"spans whole", NewInterval(date(9, 0), date(13, 0)), true},
		{"before", NewInterval(date(8, 10), date(9, 10)), false},
		{"after", NewInterval(date(13, 10), date(14, 10)), false},
		// Half-open: a dropoff at exactly another booking's pickup instant
		// is a valid back-to-back pair, not a conflict.
		{"adjacent before", NewInterval(date(9, 10), date(10, 10)), false},
		{"adjacent after", NewInterval(date(12, 10), date(13, 10)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestIntervalContainsDay(t *testing.T) {
	// Pickup March 10 14:00, dropoff March 12 10:00.
	iv := NewInterval(date(10, 14), date(12, 10))

	assert.False(t, iv.ContainsDay(date(9, 23)))
	assert.True(t, iv.ContainsDay(date(10, 0)), "pickup day counts from midnight")
	assert.True(t, iv.ContainsDay(date(11, 3)))
	assert.True(t, iv.ContainsDay(date(12, 23)), "dropoff day counts even after dropoff time")
	assert.False(t, iv.ContainsDay(date(13, 0)))
}

func TestIntervalDays(t *testing.T) {
	iv := NewInterval(date(10, 14), date(12, 10))

	days := iv.Days()
	assert.Len(t, days, 3)
	assert.Equal(t, date(10, 0), days[0])
	assert.Equal(t, date(11, 0), days[1])
	assert.Equal(t, date(12, 0), days[2])
}

func TestIntervalDaysSingleDay(t *testing.T) {
	iv := NewInterval(date(10, 9), date(10, 18))

	days := iv.Days()
	assert.Len(t, days, 1)
	assert.Equal(t, date(10, 0), days[0])
}

func TestIntervalWholeDays(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want int
	}{
		{"exactly one day", NewInterval(date(10, 10), date(11, 10)), 1},
		{"exactly two days", NewInterval(date(10, 10), date(12, 10)), 2},
		{"partial day rounds up", NewInterval(date(10, 10), date(11, 11)), 2},
		{"under a day rounds to one", NewInterval(date(10, 9), date(10, 18)), 1},
		{"two days plus an hour", NewInterval(date(10, 10), date(12, 11)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.iv.WholeDays())
		})
	}
}

func TestIntervalDuration(t *testing.T) {
	iv := NewInterval(date(10, 10), date(11, 16))
	assert.Equal(t, 30*time.Hour, iv.Duration())
}
