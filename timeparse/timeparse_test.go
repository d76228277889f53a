package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebedeu/agendcore/calendar"
)

func TestNormalize_Strings(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		timezone string
		want     time.Time
	}{
		{
			name:     "ISO with Z marker",
			input:    "2023-01-15T09:00:00Z",
			timezone: "America/New_York",
			want:     time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "ISO with numeric offset",
			input:    "2023-01-15T09:00:00+02:00",
			timezone: "UTC",
			want:     time.Date(2023, 1, 15, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "ISO without zone reads as target wall clock",
			input:    "2023-01-15T09:00",
			timezone: "America/New_York",
			want:     time.Date(2023, 1, 15, 9, 0, 0, 0, newYork),
		},
		{
			name:     "space separator implies UTC",
			input:    "2023-01-15 09:30",
			timezone: "America/New_York",
			want:     time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separator with seconds",
			input:    "2023-01-15 09:30:15",
			timezone: "UTC",
			want:     time.Date(2023, 1, 15, 9, 30, 15, 0, time.UTC),
		},
		{
			name:     "space separator with explicit offset stays zoned",
			input:    "2023-01-15 09:30+02:00",
			timezone: "UTC",
			want:     time.Date(2023, 1, 15, 7, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separator with Z marker",
			input:    "2023-01-15 09:30:15Z",
			timezone: "America/New_York",
			want:     time.Date(2023, 1, 15, 9, 30, 15, 0, time.UTC),
		},
		{
			name:     "bare date is UTC midnight",
			input:    "2023-01-15",
			timezone: "America/New_York",
			want:     time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.timezone)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNormalize_NativeTimeKeepsInstant(t *testing.T) {
	in := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := Normalize(in, "America/New_York")
	require.NoError(t, err)

	assert.True(t, got.Equal(in), "absolute instant must not change")
	assert.Equal(t, "America/New_York", got.Location().String())
	assert.Equal(t, 8, got.Hour()) // EDT
}

func TestNormalize_InvalidInputsNeverFallBackToNow(t *testing.T) {
	tests := []struct {
		name  string
		input calendar.DateLike
	}{
		{"garbage string", "not a date"},
		{"partial date", "2023-13"},
		{"nil value", nil},
		{"unsupported kind", 42},
		{"zero time", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, "UTC")
			require.Error(t, err)
			assert.True(t, got.IsZero(), "failed parse must not yield a plausible instant")
		})
	}
}

func TestNormalize_UnknownTimezone(t *testing.T) {
	_, err := Normalize("2023-01-15T09:00:00Z", "Mars/Olympus_Mons")
	require.Error(t, err)
	assert.True(t, calendar.IsType(err, calendar.ErrParse))
}

func TestLocation_CachesLookups(t *testing.T) {
	first, err := Location("Europe/Lisbon")
	require.NoError(t, err)

	second, err := Location("Europe/Lisbon")
	require.NoError(t, err)
	assert.Same(t, first, second)

	utc, err := Location("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, utc)
}

func TestParseNatural(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	got, err := ParseNatural("tomorrow at 3pm", base, "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC), got)

	_, err = ParseNatural("completely unrelated text", base, "UTC")
	require.Error(t, err)
	assert.True(t, calendar.IsType(err, calendar.ErrParse))

	_, err = ParseNatural("   ", base, "UTC")
	require.Error(t, err)
}
