// Package timeparse normalizes heterogeneous date/time inputs into
// timezone-correct instants. It is the entry point of the scheduling
// pipeline: every raw Start/End value passes through Normalize before any
// expansion, resolution or layout happens.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zebedeu/agendcore/calendar"
)

var (
	// Trailing Z or numeric offset, e.g. "+02:00" / "-0500".
	zoneMarkerRe = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
	bareDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// "2023-01-15 09:30" or "2023-01-15 09:30:00".
	dateSpaceTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}(:\d{2})?$`)
)

// Layouts tried for strings carrying an explicit zone marker.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// Layouts tried for zone-less "T" strings, interpreted in the target zone.
var floatingLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalize converts input into an instant expressed in the given IANA
// timezone. Supported inputs:
//
//   - time.Time: reinterpreted in the target zone, same absolute instant
//   - ISO-8601 string with zone marker: parsed, then reinterpreted; a
//     space may stand in for the "T" separator
//   - ISO-8601 string without zone marker: read as wall-clock time in the
//     target zone
//   - zone-less "date space time" string: implicit UTC (space replaced by
//     "T", "Z" appended before parsing)
//   - bare "YYYY-MM-DD": UTC midnight of that date
//
// Unparseable values yield a parse error; Normalize never substitutes the
// current time for bad input.
func Normalize(input calendar.DateLike, timezone string) (time.Time, error) {
	loc, err := Location(timezone)
	if err != nil {
		return time.Time{}, err
	}

	switch v := input.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, &calendar.Error{
				Type:    calendar.ErrParse,
				Message: "zero time value",
			}
		}
		return v.In(loc), nil
	case string:
		return normalizeString(v, loc)
	case nil:
		return time.Time{}, &calendar.Error{
			Type:    calendar.ErrUnsupportedInput,
			Message: "nil date value",
		}
	default:
		return time.Time{}, &calendar.Error{
			Type:    calendar.ErrUnsupportedInput,
			Message: "unsupported date kind",
		}
	}
}

func normalizeString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	switch {
	case bareDateRe.MatchString(s):
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, parseErr(s, err)
		}
		return t.In(loc), nil

	case dateSpaceTimeRe.MatchString(s):
		// Space-separated strings carry an implicit UTC zone.
		iso := strings.Replace(s, " ", "T", 1) + "Z"
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, iso); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, parseErr(s, nil)

	case zoneMarkerRe.MatchString(s):
		// The marker decides zoned parsing, whatever separates date and
		// time. "2023-01-15 09:30+02:00" is as zoned as its T sibling.
		iso := strings.Replace(s, " ", "T", 1)
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, iso); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, parseErr(s, nil)

	case strings.Contains(s, "T"):
		for _, layout := range floatingLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, parseErr(s, nil)

	default:
		return time.Time{}, parseErr(s, nil)
	}
}

func parseErr(s string, err error) error {
	return &calendar.Error{
		Type:    calendar.ErrParse,
		Message: "unparseable date string " + strconv.Quote(s),
		Err:     err,
	}
}

var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

// Location resolves an IANA timezone name, memoizing lookups. The empty name
// resolves to UTC.
func Location(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}

	locMu.RLock()
	loc, ok := locCache[name]
	locMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "unknown timezone " + name,
			Err:     err,
		}
	}

	locMu.Lock()
	locCache[name] = loc
	locMu.Unlock()
	return loc, nil
}
