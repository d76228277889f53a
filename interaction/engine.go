package interaction

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/internal/timeutil"
)

// Config wires an Engine to its view.
type Config struct {
	Callbacks   calendar.Callbacks
	Granularity calendar.Granularity

	// SlotPixelHeight is the rendered height of one slot; together with
	// the granularity it defines the minute↔pixel mapping shared with the
	// layout engine.
	SlotPixelHeight float64

	// DayWidthPixels is the rendered width of one day column, used by
	// horizontal resize.
	DayWidthPixels float64

	// Logger receives debug records for cancelled gestures. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Engine runs the drag and resize state machines against the view's current
// instance set. Call SetInstances on every render pass so gesture commits
// resolve against fresh data.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	instances map[string]calendar.EventInstance

	drag   *DragSession
	resize *ResizeSession
}

// NewEngine creates an idle engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Granularity.SlotDurationMinutes <= 0 {
		cfg.Granularity = calendar.DefaultGranularity
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		instances: make(map[string]calendar.EventInstance),
	}
}

// SetInstances replaces the engine's snapshot of resolvable instances.
func (e *Engine) SetInstances(instances []calendar.EventInstance) {
	m := make(map[string]calendar.EventInstance, len(instances))
	for _, inst := range instances {
		m[inst.ID] = inst
	}
	e.instances = m
}

// DragActive reports whether a drag session is in flight.
func (e *Engine) DragActive() bool { return e.drag != nil }

// ResizeActive reports whether a resize session is in flight.
func (e *Engine) ResizeActive() bool { return e.resize != nil }

// BeginDrag opens a drag session for the instance with the given id,
// anchored at grabbedDay. Derived recurrence occurrences are rejected.
// Starting a second drag while one is active is an invariant violation.
func (e *Engine) BeginDrag(eventID string, grabbedDay time.Time) error {
	if e.drag != nil {
		return ErrSessionActive
	}

	inst, ok := e.instances[eventID]
	if !ok {
		return &calendar.Error{
			Type:    calendar.ErrLookup,
			Message: "unknown event " + eventID,
		}
	}
	if inst.IsRecurrenceInstance {
		return ErrRecurrenceInstance
	}

	anchor := 0
	if inst.MultiDay {
		span := timeutil.DaysBetween(inst.Start, inst.End)
		anchor = timeutil.DaysBetween(inst.Start, grabbedDay)
		if anchor < 0 {
			anchor = 0
		}
		if anchor > span {
			anchor = span
		}
	}

	e.drag = &DragSession{
		ID:               uuid.NewString(),
		EventID:          eventID,
		AnchorOffsetDays: anchor,
		StartedAt:        time.Now(),
	}
	return nil
}

// EndDrag commits the active drag session. dropTarget is the resolved
// date/slot under the pointer and deltaPx the net pointer displacement on
// the constrained axis. Displacement under ClickThresholdPx reclassifies the
// gesture as a click. An unresolvable target or a vanished event discards
// the session without firing anything.
func (e *Engine) EndDrag(dropTarget time.Time, deltaPx float64) error {
	session := e.drag
	if session == nil {
		return ErrNoActiveSession
	}
	e.drag = nil

	inst, ok := e.instances[session.EventID]
	if !ok {
		e.logger.Debug("drag cancelled, event disappeared", "event_id", session.EventID)
		return nil
	}
	if dropTarget.IsZero() {
		e.logger.Debug("drag cancelled, unresolvable drop target", "event_id", session.EventID)
		return nil
	}

	if math.Abs(deltaPx) < ClickThresholdPx {
		if e.cfg.Callbacks.OnEventClick != nil {
			e.cfg.Callbacks.OnEventClick(inst)
		}
		return nil
	}

	// Preserve the grab point and the wall-clock time of day on both
	// bounds; only the calendar day moves.
	span := timeutil.DaysBetween(inst.Start, inst.End)
	newStartDay := timeutil.StartOfDay(dropTarget.In(inst.Start.Location())).AddDate(0, 0, -session.AnchorOffsetDays)
	newStart := timeutil.WithTimeOfDay(newStartDay, inst.Start)
	newEnd := timeutil.WithTimeOfDay(newStartDay.AddDate(0, 0, span), inst.End)

	updated := inst
	updated.Start = newStart
	updated.End = newEnd
	updated.MultiDay = !timeutil.SameDay(newStart, newEnd)

	if err := updated.Validate(); err != nil {
		return err
	}
	if e.cfg.Callbacks.OnEventUpdate != nil {
		e.cfg.Callbacks.OnEventUpdate(updated)
	}
	return nil
}

// CancelDrag discards the active drag session, if any, without firing a
// callback.
func (e *Engine) CancelDrag() {
	e.drag = nil
}

// BeginResize opens a resize session on the given handle.
func (e *Engine) BeginResize(eventID string, handle ResizeHandle) error {
	if e.resize != nil {
		return ErrSessionActive
	}

	if _, ok := e.instances[eventID]; !ok {
		return &calendar.Error{
			Type:    calendar.ErrLookup,
			Message: "unknown event " + eventID,
		}
	}

	e.resize = &ResizeSession{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Handle:    handle,
		StartedAt: time.Now(),
	}
	return nil
}

// EndResize commits the active resize session with the given pixel delta.
// Bottom-handle deltas translate to minutes through the slot scale; edge
// handles translate to whole days through the day column width.
func (e *Engine) EndResize(deltaPx float64) error {
	session := e.resize
	if session == nil {
		return ErrNoActiveSession
	}
	e.resize = nil

	inst, ok := e.instances[session.EventID]
	if !ok {
		e.logger.Debug("resize cancelled, event disappeared", "event_id", session.EventID)
		return nil
	}

	var updated calendar.EventInstance
	switch session.Handle {
	case HandleBottom:
		updated = e.resizeBottom(inst, deltaPx)
	case HandleLeft, HandleRight:
		updated = e.resizeHorizontal(inst, session.Handle, deltaPx)
	default:
		return &calendar.Error{
			Type:    calendar.ErrInvariantViolation,
			Message: "unknown resize handle " + string(session.Handle),
		}
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	if e.cfg.Callbacks.OnEventUpdate != nil {
		e.cfg.Callbacks.OnEventUpdate(updated)
	}
	return nil
}

// CancelResize discards the active resize session, if any.
func (e *Engine) CancelResize() {
	e.resize = nil
}

// resizeBottom changes duration within the day. An end pushed past the
// configured day boundary rolls the overflow onto the start of the next day
// instead of clamping, and flips the instance to multi-day.
func (e *Engine) resizeBottom(inst calendar.EventInstance, deltaPx float64) calendar.EventInstance {
	minutes := 0.0
	if e.cfg.SlotPixelHeight > 0 {
		minutes = deltaPx * float64(e.cfg.Granularity.SlotDurationMinutes) / e.cfg.SlotPixelHeight
	}

	newEnd := inst.End.Add(time.Duration(math.Round(minutes)) * time.Minute)
	if newEnd.Before(inst.Start) {
		newEnd = inst.Start
	}

	day := timeutil.StartOfDay(inst.Start)
	boundary := day.Add(time.Duration(e.cfg.Granularity.SlotMax) * time.Minute)

	updated := inst
	if newEnd.After(boundary) {
		overflow := newEnd.Sub(boundary)
		updated.End = day.AddDate(0, 0, 1).Add(overflow)
		updated.MultiDay = true
	} else {
		updated.End = newEnd
		updated.MultiDay = !timeutil.SameDay(inst.Start, newEnd)
	}
	return updated
}

// resizeHorizontal moves one edge of a multi-day event by whole days. A
// collapsed or inverted span is reopened to MinResizeDuration by pushing the
// resized bound back.
func (e *Engine) resizeHorizontal(inst calendar.EventInstance, handle ResizeHandle, deltaPx float64) calendar.EventInstance {
	days := 0
	if e.cfg.DayWidthPixels > 0 {
		days = int(math.Round(deltaPx / e.cfg.DayWidthPixels))
	}

	updated := inst
	switch handle {
	case HandleRight:
		updated.End = inst.End.AddDate(0, 0, days)
		if !updated.Start.Before(updated.End) {
			updated.End = updated.Start.Add(MinResizeDuration)
		}
	case HandleLeft:
		updated.Start = inst.Start.AddDate(0, 0, days)
		if !updated.Start.Before(updated.End) {
			updated.Start = updated.End.Add(-MinResizeDuration)
		}
	}
	updated.MultiDay = !timeutil.SameDay(updated.Start, updated.End)
	return updated
}

// ClickSlot forwards an empty-slot tap to the view's slot callback.
func (e *Engine) ClickSlot(instant time.Time) {
	if e.cfg.Callbacks.OnSlotClick != nil {
		e.cfg.Callbacks.OnSlotClick(instant)
	}
}

// ClickDay forwards a day-cell tap to the view's day callback.
func (e *Engine) ClickDay(day time.Time) {
	if e.cfg.Callbacks.OnDayClick != nil {
		e.cfg.Callbacks.OnDayClick(day)
	}
}
