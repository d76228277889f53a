// Package layout computes non-overlapping fractional position records for
// concurrently-active event instances. Horizontal values are percentages of
// the layout bucket; vertical values are pixels derived from minutes and the
// slot scale.
package layout

import (
	"sort"
	"time"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/internal/timeutil"
	"github.com/zebedeu/agendcore/slot"
)

const (
	// MinEventHeightPx keeps zero-duration markers visually addressable.
	MinEventHeightPx = 2.0

	// DefaultMonthCellCap is how many events a month cell shows before
	// overflowing into a "+N more" affordance.
	DefaultMonthCellCap = 3
)

// LayoutTimeGrid positions instances on the day/week time grid. Instances
// sharing a minute-precision start bucket split the bucket's width evenly:
// each gets width 100/n % at left i*100/n %, so widths always sum to 100 and
// lefts partition the bucket without gaps or overlaps.
//
// Vertical extent is minutes scaled by slotPixelHeight/slotDurationMinutes.
// Single-day instances carry top 0, relative to their own slot cell;
// multi-day instances are clipped to day and positioned by minutes elapsed
// since midnight of that day.
func LayoutTimeGrid(events []calendar.EventInstance, slotPixelHeight float64, slotDurationMinutes int, day time.Time) []calendar.PositionedEvent {
	if slotDurationMinutes <= 0 || slotPixelHeight <= 0 {
		return nil
	}
	pixelsPerMinute := slotPixelHeight / float64(slotDurationMinutes)

	// Bucket by minute-precision start, preserving first-seen bucket order
	// and input order within a bucket.
	var order []string
	buckets := make(map[string][]calendar.EventInstance)
	for _, inst := range events {
		key := timeutil.TruncateToMinute(inst.Start).UTC().Format(time.RFC3339)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], inst)
	}

	out := make([]calendar.PositionedEvent, 0, len(events))
	for _, key := range order {
		bucket := buckets[key]
		n := len(bucket)
		for i, inst := range bucket {
			var top, height float64
			if inst.MultiDay && !day.IsZero() {
				segStart, segEnd := slot.ClipToDay(inst, day)
				top = float64(timeutil.MinutesIntoDay(segStart)) * pixelsPerMinute
				height = segEnd.Sub(segStart).Minutes() * pixelsPerMinute
			} else {
				top = 0
				height = inst.Duration().Minutes() * pixelsPerMinute
			}
			if height < MinEventHeightPx {
				height = MinEventHeightPx
			}

			out = append(out, calendar.PositionedEvent{
				EventInstance: inst,
				Layout: calendar.Layout{
					Top:    top,
					Left:   float64(i) * 100 / float64(n),
					Width:  100 / float64(n),
					Height: height,
				},
			})
		}
	}

	return out
}

// LayoutMonthCell stacks a day cell's instances in display order: start
// ascending, duration ascending as the tie-break. At most visibleCap entries
// are laid out (Top is the stacking row, Width spans the cell); the rest are
// only counted so the caller can render a "+N more" affordance. A
// non-positive cap means DefaultMonthCellCap.
func LayoutMonthCell(events []calendar.EventInstance, visibleCap int) (visible []calendar.PositionedEvent, overflow int) {
	if visibleCap <= 0 {
		visibleCap = DefaultMonthCellCap
	}

	sorted := make([]calendar.EventInstance, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].Duration() < sorted[j].Duration()
	})

	if len(sorted) > visibleCap {
		overflow = len(sorted) - visibleCap
		sorted = sorted[:visibleCap]
	}

	visible = make([]calendar.PositionedEvent, 0, len(sorted))
	for i, inst := range sorted {
		visible = append(visible, calendar.PositionedEvent{
			EventInstance: inst,
			Layout: calendar.Layout{
				Top:    float64(i),
				Left:   0,
				Width:  100,
				Height: 1,
			},
		})
	}
	return visible, overflow
}
