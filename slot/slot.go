// Package slot resolves which event instances are active in a discretized
// time slot or day cell. Timed events resolve by minute-precision start
// match; all-day and multi-day events live in a separate lane resolved by
// day-range containment.
package slot

import (
	"time"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/internal/timeutil"
)

// ResolveSlot returns the instances whose start falls exactly on the given
// slot, at minute precision. All-day and multi-day instances never resolve
// into timed slots; see ResolveAllDayLane.
func ResolveSlot(slotInstant time.Time, events []calendar.EventInstance, g calendar.Granularity) []calendar.EventInstance {
	var out []calendar.EventInstance
	for _, inst := range events {
		if inst.AllDay || inst.MultiDay {
			continue
		}
		if timeutil.SameMinute(inst.Start, slotInstant) {
			out = append(out, inst)
		}
	}
	return out
}

// ResolveAllDayLane returns the all-day and multi-day instances whose span
// covers the given day cell.
func ResolveAllDayLane(dayCell time.Time, events []calendar.EventInstance) []calendar.EventInstance {
	var out []calendar.EventInstance
	for _, inst := range events {
		if !inst.AllDay && !inst.MultiDay {
			continue
		}
		laneStart := timeutil.StartOfDay(inst.Start)
		laneEnd := timeutil.EndOfDay(inst.End)
		if !dayCell.Before(laneStart) && !dayCell.After(laneEnd) {
			out = append(out, inst)
		}
	}
	return out
}

// ResolveDay returns every instance participating in the given day,
// regardless of lane.
func ResolveDay(day time.Time, events []calendar.EventInstance) []calendar.EventInstance {
	dayStart := timeutil.StartOfDay(day)
	dayEnd := timeutil.EndOfDay(day)

	var out []calendar.EventInstance
	for _, inst := range events {
		if timeutil.RangesOverlap(inst.Start, inst.End, dayStart, dayEnd) {
			out = append(out, inst)
		}
	}
	return out
}

// ClipToDay clips an instance's span to the given day's boundaries: the
// effective start is the real start only on the instance's first day, and the
// effective end is the real end only on its last day.
func ClipToDay(inst calendar.EventInstance, day time.Time) (start, end time.Time) {
	start = timeutil.StartOfDay(day)
	end = timeutil.EndOfDay(day)

	if timeutil.SameDay(day, inst.Start) {
		start = inst.Start
	}
	if timeutil.SameDay(day, inst.End) {
		end = inst.End
	}
	return start, end
}

// RedLineOffset returns the current-time indicator position in slot units
// relative to viewStart. The caller owns the refresh timer; this function is
// pure. The result is negative when now precedes viewStart.
func RedLineOffset(now, viewStart time.Time, slotDuration time.Duration) float64 {
	if slotDuration <= 0 {
		return 0
	}
	return float64(now.Sub(viewStart)) / float64(slotDuration)
}
