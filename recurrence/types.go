// Package recurrence expands recurring events into concrete, window-bounded
// occurrences. Expansion is a pure function of the event list and the view
// window; malformed rules degrade to the unexpanded event and never abort a
// batch.
package recurrence

import (
	"log/slog"
)

const (
	// DefaultMaxOccurrencesPerEvent caps expansion of unbounded rules over
	// large windows.
	DefaultMaxOccurrencesPerEvent = 1000
)

// Diagnostic reports a non-fatal expansion problem (malformed rule,
// unnormalizable date) to the caller.
type Diagnostic struct {
	EventID string
	Rule    string
	Err     error
}

// Options configures an Expander.
type Options struct {
	// MaxOccurrencesPerEvent limits how many occurrences a single rule may
	// contribute. Zero means DefaultMaxOccurrencesPerEvent.
	MaxOccurrencesPerEvent int

	// Logger receives warnings for recovered errors. Nil means
	// slog.Default().
	Logger *slog.Logger

	// OnDiagnostic, when set, is invoked once per recovered error in
	// addition to logging.
	OnDiagnostic func(Diagnostic)
}

// DefaultOptions provides sensible defaults for interactive views.
var DefaultOptions = Options{
	MaxOccurrencesPerEvent: DefaultMaxOccurrencesPerEvent,
}
