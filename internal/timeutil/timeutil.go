// Package timeutil provides day-boundary and minute-precision helpers shared
// by the scheduling packages.
package timeutil

import (
	"math"
	"time"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day in t's
// location (23:59:59.999999999).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// TruncateToMinute drops seconds and smaller units, keeping the location.
func TruncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// SameMinute reports whether a and b denote the same absolute minute.
func SameMinute(a, b time.Time) bool {
	return TruncateToMinute(a).Equal(TruncateToMinute(b))
}

// SameDay reports whether a and b fall on the same calendar day when both are
// viewed in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar-day steps from a's day to b's
// day, negative when b precedes a. Days shortened or stretched by a DST
// transition still count as one step.
func DaysBetween(a, b time.Time) int {
	diff := StartOfDay(b.In(a.Location())).Sub(StartOfDay(a))
	return int(math.Round(diff.Hours() / 24))
}

// MinutesIntoDay returns the wall-clock minutes elapsed since midnight of t's
// day.
func MinutesIntoDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] intersect,
// endpoints included.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Before(bStart) {
		return false
	}
	if bEnd.Before(aStart) {
		return false
	}
	return true
}

// WithTimeOfDay composes day's calendar date with tod's wall-clock time of
// day, in day's location.
func WithTimeOfDay(day, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), tod.Nanosecond(), day.Location())
}
