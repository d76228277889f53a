package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebedeu/agendcore/calendar"
)

func TestCache_MemoizesExpansion(t *testing.T) {
	recoveries := 0
	expander := NewExpander(Options{
		OnDiagnostic: func(Diagnostic) { recoveries++ },
	})

	cache := NewCache(expander, CacheConfig{
		TTL:             time.Minute,
		MaxEntries:      8,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	// The malformed rule makes recomputation observable through the
	// diagnostic counter.
	events := []calendar.Event{
		{
			ID:             "observed",
			Start:          "2023-01-02T10:00:00Z",
			End:            "2023-01-02T11:00:00Z",
			RecurrenceRule: "FREQ=NOPE",
		},
	}
	window := utcWindow(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC),
	)

	first := cache.Expand(events, window)
	require.Len(t, first, 1)
	assert.Equal(t, 1, recoveries)

	second := cache.Expand(events, window)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, recoveries, "second call must be served from cache")
	assert.Equal(t, 1, cache.Len())

	// A different window is a different computation.
	shifted := window
	shifted.End = shifted.End.AddDate(0, 0, 1)
	cache.Expand(events, shifted)
	assert.Equal(t, 2, recoveries)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_ContentEditsMissTheCache(t *testing.T) {
	expander := NewExpander(DefaultOptions)
	cache := NewCache(expander, CacheConfig{
		TTL:             time.Minute,
		MaxEntries:      8,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	events := []calendar.Event{
		{
			ID:    "meeting",
			Title: "Old title",
			Start: "2023-01-02T10:00:00Z",
			End:   "2023-01-02T11:00:00Z",
		},
	}
	window := utcWindow(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC),
	)

	first := cache.Expand(events, window)
	require.Len(t, first, 1)
	assert.Equal(t, "Old title", first[0].Title)

	// Same schedule, edited content. The cache must not hand back the
	// previous instances.
	events[0].Title = "New title"
	events[0].Color = "#00ff00"
	events[0].Metadata = map[string]any{"room": "3B"}

	second := cache.Expand(events, window)
	require.Len(t, second, 1)
	assert.Equal(t, "New title", second[0].Title)
	assert.Equal(t, "#00ff00", second[0].Color)
	assert.Equal(t, map[string]any{"room": "3B"}, second[0].Metadata)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_EvictsWhenOverCapacity(t *testing.T) {
	expander := NewExpander(DefaultOptions)
	cache := NewCache(expander, CacheConfig{
		TTL:             time.Minute,
		MaxEntries:      2,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	base := utcWindow(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	)

	for i := 0; i < 4; i++ {
		w := base
		w.Start = w.Start.AddDate(0, 0, i)
		w.End = w.End.AddDate(0, 0, i)
		cache.Expand(nil, w)
	}

	assert.LessOrEqual(t, cache.Len(), 2)
}
