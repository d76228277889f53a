package layout

import (
	"github.com/samber/mo"

	"github.com/zebedeu/agendcore/calendar"
)

// Predicate decides whether a renderer applies to an instance.
type Predicate func(calendar.EventInstance) bool

// Registration pairs a predicate with the renderer it selects.
type Registration[R any] struct {
	Matches  Predicate
	Renderer R
}

// Registry is an ordered renderer strategy list. The surrounding view
// registers one renderer per event kind (all-day banner, timed block,
// resource chip, ...) and resolves the first match once per event, instead of
// dispatching on dynamic component types.
type Registry[R any] struct {
	registrations []Registration[R]
}

// NewRegistry creates an empty registry.
func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{}
}

// Register appends a (predicate, renderer) pair. Registration order is
// resolution priority.
func (r *Registry[R]) Register(matches Predicate, renderer R) {
	r.registrations = append(r.registrations, Registration[R]{
		Matches:  matches,
		Renderer: renderer,
	})
}

// Resolve returns the first registered renderer whose predicate accepts the
// instance, or None when nothing matches.
func (r *Registry[R]) Resolve(inst calendar.EventInstance) mo.Option[R] {
	for _, reg := range r.registrations {
		if reg.Matches(inst) {
			return mo.Some(reg.Renderer)
		}
	}
	return mo.None[R]()
}
