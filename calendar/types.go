package calendar

import (
	"fmt"
	"time"
)

// DateLike is a raw date/time value as supplied by the caller. Supported
// dynamic kinds are time.Time and string (ISO-8601 with or without zone
// marker, "date space time", or bare YYYY-MM-DD). Values are converted to
// concrete instants by the timeparse package.
type DateLike = any

// ResourceCategory tags a resource with its scheduling role.
type ResourceCategory string

const (
	ResourceRoom      ResourceCategory = "room"
	ResourcePerson    ResourceCategory = "person"
	ResourceEquipment ResourceCategory = "equipment"
	ResourceOther     ResourceCategory = "other"
)

// Resource is immutable reference data owned by the caller; the core only
// reads it.
type Resource struct {
	ID       string
	Name     string
	Category ResourceCategory
}

// Event is a calendar event as supplied by the caller, before recurrence
// expansion. Start and End may be raw values; they are normalized into
// instants when the event enters the pipeline.
type Event struct {
	ID    string
	Title string

	Start DateLike
	End   DateLike

	// Timezone is an IANA zone name. When empty, the view's rendering
	// timezone applies.
	Timezone string

	AllDay   bool
	MultiDay bool

	// RecurrenceRule is an opaque RFC 5545 RRULE string. Malformed rules
	// are tolerated: the event is then treated as non-recurring.
	RecurrenceRule string

	Resources []Resource
	Color     string
	Metadata  map[string]any
}

// EventInstance is one concrete, normalized occurrence of an Event. Instances
// are recomputed from scratch on every expansion and never mutated.
type EventInstance struct {
	// ID is the event id for plain events, or
	// "<originalID>-<occurrenceRFC3339>" for derived occurrences.
	ID    string
	Title string

	Start time.Time
	End   time.Time

	Timezone string
	AllDay   bool
	MultiDay bool

	RecurrenceRule string
	Resources      []Resource
	Color          string
	Metadata       map[string]any

	// IsRecurrenceInstance marks occurrences derived from a recurrence
	// rule. OriginalEventID is the read-only foreign key back to the
	// source event; it is set only on derived occurrences.
	IsRecurrenceInstance bool
	OriginalEventID      string
}

// Duration returns the instance's length. Zero is valid (instantaneous
// marker); negative durations violate the normalization invariant.
func (i EventInstance) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Validate checks the normalized-bounds invariant: start must not be after
// end.
func (i EventInstance) Validate() error {
	if i.End.Before(i.Start) {
		return &Error{
			Type:    ErrInvariantViolation,
			Message: fmt.Sprintf("event %s has negative duration", i.ID),
		}
	}
	return nil
}

// ViewWindow is the visible range a calendar view currently renders. It is
// created per render cycle and never persisted.
type ViewWindow struct {
	Start    time.Time
	End      time.Time
	Timezone string
}

// Validate checks that the window is a non-empty forward range.
func (w ViewWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return &Error{
			Type:    ErrInvariantViolation,
			Message: "view window start must precede end",
		}
	}
	return nil
}

// Granularity describes the discretization of the day/week time grid.
// SlotMin and SlotMax are minutes from midnight bounding the rendered day.
type Granularity struct {
	SlotDurationMinutes int
	SlotMin             int
	SlotMax             int
}

// DefaultGranularity renders a full day in 30-minute slots.
var DefaultGranularity = Granularity{
	SlotDurationMinutes: 30,
	SlotMin:             0,
	SlotMax:             24 * 60,
}

// SlotDuration returns the slot size as a time.Duration.
func (g Granularity) SlotDuration() time.Duration {
	return time.Duration(g.SlotDurationMinutes) * time.Minute
}

// Layout is the fractional position of an instance within its layout bucket.
// Left and Width are percentages of the bucket's horizontal extent; Top and
// Height are pixel values derived from minutes and the pixels-per-slot scale.
type Layout struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// PositionedEvent is an EventInstance plus its computed layout record.
type PositionedEvent struct {
	EventInstance
	Layout Layout
}

// Callbacks are the outputs of the interaction engine, invoked on gesture
// commit or click reclassification. Nil members are simply not fired.
type Callbacks struct {
	OnEventUpdate func(EventInstance)
	OnEventClick  func(EventInstance)
	OnSlotClick   func(time.Time)
	OnDayClick    func(time.Time)
}
