package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	at := time.Date(2023, 1, 15, 14, 30, 45, 123, time.UTC)

	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), StartOfDay(at))
	assert.Equal(t, 23, EndOfDay(at).Hour())
	assert.Equal(t, 15, EndOfDay(at).Day())
	assert.True(t, EndOfDay(at).Before(StartOfDay(at).AddDate(0, 0, 1)))
}

func TestMinuteTruncation(t *testing.T) {
	a := time.Date(2023, 1, 15, 9, 0, 42, 999, time.UTC)
	b := time.Date(2023, 1, 15, 9, 0, 7, 0, time.UTC)
	c := time.Date(2023, 1, 15, 9, 1, 0, 0, time.UTC)

	assert.True(t, SameMinute(a, b))
	assert.False(t, SameMinute(a, c))
	assert.Equal(t, 0, TruncateToMinute(a).Second())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2023, 1, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2023, 1, 13, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetween_AcrossDSTTransitions(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// Spring forward (2023-03-12): the span contains a 23-hour day.
	springA := time.Date(2023, 3, 10, 9, 0, 0, 0, newYork)
	springB := time.Date(2023, 3, 13, 17, 0, 0, 0, newYork)
	assert.Equal(t, 3, DaysBetween(springA, springB))
	assert.Equal(t, -3, DaysBetween(springB, springA))

	// Fall back (2023-11-05): the span contains a 25-hour day.
	fallA := time.Date(2023, 11, 3, 9, 0, 0, 0, newYork)
	fallB := time.Date(2023, 11, 6, 17, 0, 0, 0, newYork)
	assert.Equal(t, 3, DaysBetween(fallA, fallB))
}

func TestRangesOverlap(t *testing.T) {
	base := time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint", base, base.Add(time.Hour), base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"touching endpoints count", base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"contained", base, base.Add(4 * time.Hour), base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"reversed disjoint", base.Add(2 * time.Hour), base.Add(3 * time.Hour), base, base.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestWithTimeOfDay(t *testing.T) {
	day := time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)
	tod := time.Date(1999, 1, 1, 9, 45, 30, 0, time.UTC)

	got := WithTimeOfDay(day, tod)
	assert.Equal(t, time.Date(2023, 6, 20, 9, 45, 30, 0, time.UTC), got)
}

func TestMinutesIntoDay(t *testing.T) {
	assert.Equal(t, 570, MinutesIntoDay(time.Date(2023, 1, 15, 9, 30, 59, 0, time.UTC)))
	assert.Equal(t, 0, MinutesIntoDay(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)))
}
