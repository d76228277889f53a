// Package ics bridges the scheduling core to iCalendar data. It is boundary
// glue: Decode turns VEVENT components into calendar events for the
// pipeline, Encode writes expanded instances back out as a flat VCALENDAR.
// No scheduling logic lives here.
package ics

import (
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/internal/timeutil"
)

const productID = "-//agendcore//agendcore//EN"

// Decode extracts the VEVENT components of cal into calendar events.
// Components missing a usable DTSTART are skipped with a warning; a single
// bad component never fails the batch. timezone is the fallback zone
// recorded on each event.
func Decode(cal *ical.Calendar, timezone string, logger *slog.Logger) ([]calendar.Event, error) {
	if cal == nil {
		return nil, &calendar.Error{
			Type:    calendar.ErrUnsupportedInput,
			Message: "nil calendar",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	var events []calendar.Event
	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		ev, err := decodeEvent(comp, timezone)
		if err != nil {
			logger.Warn("skipping undecodable VEVENT", "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(comp *ical.Component, timezone string) (calendar.Event, error) {
	var ev calendar.Event

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		ev.ID = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		ev.Title = prop.Value
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return ev, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "VEVENT without DTSTART",
		}
	}
	ev.AllDay = isDateOnly(startProp)

	start, err := comp.Props.DateTime(ical.PropDateTimeStart, nil)
	if err != nil {
		return ev, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "unparseable DTSTART",
			Err:     err,
		}
	}

	end, err := comp.Props.DateTime(ical.PropDateTimeEnd, nil)
	if err != nil || end.IsZero() {
		if durProp := comp.Props.Get(ical.PropDuration); durProp != nil {
			if dur, derr := durProp.Duration(); derr == nil {
				end = start.Add(dur)
			}
		}
	}
	if end.IsZero() {
		// DTEND default: one day for all-day events, instantaneous
		// otherwise.
		if ev.AllDay {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	}
	if ev.AllDay && timeutil.SameDay(start, end) {
		end = timeutil.StartOfDay(start).AddDate(0, 0, 1)
	}

	ev.Start = start
	ev.End = end
	ev.Timezone = timezone
	ev.MultiDay = !ev.AllDay && !timeutil.SameDay(start, end)

	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		// Carried as an opaque string; the recurrence package owns
		// evaluation and its failure policy.
		ev.RecurrenceRule = prop.Value
	}
	if prop := comp.Props.Get("COLOR"); prop != nil {
		ev.Color = prop.Value
	}

	return ev, nil
}

// Encode writes expanded instances as discrete VEVENTs in a new VCALENDAR.
// Recurrence has already been flattened by expansion, so no RRULE properties
// are emitted; each derived occurrence becomes a standalone snapshot event.
func Encode(instances []calendar.EventInstance) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, inst := range instances {
		comp := ical.NewComponent(ical.CompEvent)
		comp.Props.SetText(ical.PropUID, inst.ID)
		if inst.Title != "" {
			comp.Props.SetText(ical.PropSummary, inst.Title)
		}
		comp.Props.SetDateTime(ical.PropDateTimeStamp, now)
		comp.Props.SetDateTime(ical.PropDateTimeStart, inst.Start)
		comp.Props.SetDateTime(ical.PropDateTimeEnd, inst.End)
		if inst.Color != "" {
			comp.Props.SetText("COLOR", inst.Color)
		}
		if inst.IsRecurrenceInstance {
			comp.Props.SetText("X-ORIGINAL-EVENT-ID", inst.OriginalEventID)
		}
		cal.Children = append(cal.Children, comp)
	}
	return cal
}

// isDateOnly reports whether a property carries a VALUE=DATE parameter,
// marking an all-day value.
func isDateOnly(prop *ical.Prop) bool {
	if prop.Params == nil {
		return false
	}
	values := prop.Params["VALUE"]
	return len(values) > 0 && strings.EqualFold(values[0], "DATE")
}
