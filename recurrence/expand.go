package recurrence

import (
	"log/slog"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/internal/timeutil"
	"github.com/zebedeu/agendcore/timeparse"
)

// Expander turns events with recurrence rules into concrete occurrences.
type Expander struct {
	opts   Options
	logger *slog.Logger
}

// NewExpander creates an Expander with the given options.
func NewExpander(opts Options) *Expander {
	if opts.MaxOccurrencesPerEvent <= 0 {
		opts.MaxOccurrencesPerEvent = DefaultMaxOccurrencesPerEvent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{opts: opts, logger: logger}
}

// Expand converts events into instances visible through window.
//
// Events without a recurrence rule pass through unconditionally; they are
// deliberately not filtered against the window because month/agenda call
// sites rely on receiving them regardless. Recurring events contribute one
// instance per occurrence inside [window.Start, window.End], both ends
// inclusive, and nothing at all when no occurrence falls inside.
func (e *Expander) Expand(events []calendar.Event, window calendar.ViewWindow) []calendar.EventInstance {
	instances := make([]calendar.EventInstance, 0, len(events))

	for _, ev := range events {
		tz := ev.Timezone
		if tz == "" {
			tz = window.Timezone
		}

		start, err := timeparse.Normalize(ev.Start, tz)
		if err != nil {
			e.report(ev, err, "skipping event with unparseable start")
			continue
		}
		end, err := timeparse.Normalize(ev.End, tz)
		if err != nil {
			e.report(ev, err, "skipping event with unparseable end")
			continue
		}
		if end.Before(start) {
			e.report(ev, &calendar.Error{
				Type:    calendar.ErrInvariantViolation,
				Message: "event end precedes start",
			}, "skipping event with negative duration")
			continue
		}

		if ev.RecurrenceRule == "" {
			instances = append(instances, makeInstance(ev, ev.ID, start, end, tz, false))
			continue
		}

		instances = append(instances, e.expandRecurring(ev, start, end, tz, window)...)
	}

	return instances
}

// expandRecurring evaluates the event's rule inside the window. A rule that
// fails to parse downgrades the event to a plain unexpanded instance.
func (e *Expander) expandRecurring(ev calendar.Event, start, end time.Time, tz string, window calendar.ViewWindow) []calendar.EventInstance {
	ruleText, ruleTZ := splitRuleTimezone(ev.RecurrenceRule)
	baseTZ := tz
	if ruleTZ != "" {
		// A timezone carried by the rule wins over event and window.
		tz = ruleTZ
	}
	loc, err := timeparse.Location(tz)
	if err != nil {
		e.report(ev, err, "recurrence rule names unknown timezone, emitting unexpanded event")
		return []calendar.EventInstance{makeInstance(ev, ev.ID, start, end, baseTZ, false)}
	}

	localStart := start.In(loc)

	rule, err := rrule.StrToRRule(ruleText)
	if err != nil {
		e.report(ev, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "malformed recurrence rule",
			Err:     err,
		}, "malformed recurrence rule, emitting unexpanded event")
		return []calendar.EventInstance{makeInstance(ev, ev.ID, start, end, tz, false)}
	}
	rule.DTStart(localStart)

	var set rrule.Set
	set.RRule(rule)

	occStarts := set.Between(window.Start.In(loc), window.End.In(loc), true)
	if len(occStarts) > e.opts.MaxOccurrencesPerEvent {
		e.logger.Warn("recurrence expansion truncated",
			"event_id", ev.ID,
			"cap", e.opts.MaxOccurrencesPerEvent)
		occStarts = occStarts[:e.opts.MaxOccurrencesPerEvent]
	}

	duration := end.Sub(start)
	out := make([]calendar.EventInstance, 0, len(occStarts))
	for _, occ := range occStarts {
		// Re-anchor the wall-clock time of day on every occurrence so a
		// DST transition cannot drift the hour.
		occStart := timeutil.WithTimeOfDay(occ.In(loc), localStart)
		occEnd := occStart.Add(duration)

		id := ev.ID + "-" + occStart.UTC().Format(time.RFC3339)
		out = append(out, makeInstance(ev, id, occStart, occEnd, tz, true))
	}

	return out
}

func makeInstance(ev calendar.Event, id string, start, end time.Time, tz string, derived bool) calendar.EventInstance {
	inst := calendar.EventInstance{
		ID:             id,
		Title:          ev.Title,
		Start:          start,
		End:            end,
		Timezone:       tz,
		AllDay:         ev.AllDay,
		MultiDay:       ev.MultiDay,
		RecurrenceRule: ev.RecurrenceRule,
		Resources:      ev.Resources,
		Color:          ev.Color,
		Metadata:       ev.Metadata,
	}
	if derived {
		inst.IsRecurrenceInstance = true
		inst.OriginalEventID = ev.ID
	}
	return inst
}

func (e *Expander) report(ev calendar.Event, err error, msg string) {
	e.logger.Warn(msg, "event_id", ev.ID, "error", err)
	if e.opts.OnDiagnostic != nil {
		e.opts.OnDiagnostic(Diagnostic{
			EventID: ev.ID,
			Rule:    ev.RecurrenceRule,
			Err:     err,
		})
	}
}

// splitRuleTimezone pulls a TZID part out of an RRULE option string, since
// rule-level timezones take precedence during occurrence composition and the
// evaluator itself does not accept the parameter inline.
func splitRuleTimezone(rule string) (cleaned, tzid string) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")

	parts := strings.Split(rule, ";")
	kept := parts[:0]
	for _, part := range parts {
		if v, ok := strings.CutPrefix(part, "TZID="); ok {
			tzid = v
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, ";"), tzid
}
