// Package interaction converts pointer drag and resize gestures into updated
// event bounds. It hosts two independent single-active session state
// machines (drag, resize), each cycling Idle → Active → Committed|Cancelled
// → Idle. All methods are meant for a single UI thread; the engine performs
// no locking.
package interaction

import (
	"errors"
	"time"

	"github.com/zebedeu/agendcore/calendar"
)

// ClickThresholdPx is the pointer displacement below which a completed drag
// is reclassified as a click. This is a hard contract: it is the only
// disambiguation between selection and rescheduling on the same pointer
// primitive.
const ClickThresholdPx = 1.0

// MinResizeDuration is the duration a horizontal resize falls back to when
// it would collapse or invert the event's span.
const MinResizeDuration = time.Hour

// ResizeHandle identifies which edge of an event a resize gesture grabbed.
type ResizeHandle string

const (
	// HandleBottom changes duration within a day on the time grid.
	HandleBottom ResizeHandle = "bottom"
	// HandleLeft moves a multi-day event's start by whole days.
	HandleLeft ResizeHandle = "left"
	// HandleRight moves a multi-day event's end by whole days.
	HandleRight ResizeHandle = "right"
)

var (
	// ErrSessionActive signals an attempt to start a session while one of
	// the same kind is active. This is a caller programming error.
	ErrSessionActive = &calendar.Error{
		Type:    calendar.ErrInvariantViolation,
		Message: "an interaction session of this kind is already active",
	}

	// ErrNoActiveSession signals a commit or cancel without a preceding
	// start.
	ErrNoActiveSession = &calendar.Error{
		Type:    calendar.ErrInvariantViolation,
		Message: "no active interaction session",
	}

	// ErrRecurrenceInstance rejects drag gestures on derived occurrences:
	// the original series stays immutable through drag.
	ErrRecurrenceInstance = errors.New("recurrence instances cannot be rescheduled independently")
)

// DragSession is the ephemeral state of one drag gesture. It exists only
// between gesture start and end/cancel and is never serialized.
type DragSession struct {
	ID      string
	EventID string

	// AnchorOffsetDays records which day of a multi-day event the user
	// grabbed, so the drop preserves the grab point: 0 for the start
	// handle, the full span for the end handle, the distance from the
	// start day otherwise.
	AnchorOffsetDays int

	StartedAt time.Time
}

// ResizeSession is the ephemeral state of one resize gesture.
type ResizeSession struct {
	ID      string
	EventID string
	Handle  ResizeHandle

	StartedAt time.Time
}
