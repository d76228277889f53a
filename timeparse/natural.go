package timeparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/zebedeu/agendcore/calendar"
)

var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseNatural interprets free-form English date expressions such as
// "tomorrow at 3pm" or "next friday", relative to base, in the given
// timezone. It serves quick-add style input only; the scheduling pipeline
// itself accepts structured DateLike values exclusively.
func ParseNatural(input string, base time.Time, timezone string) (time.Time, error) {
	loc, err := Location(timezone)
	if err != nil {
		return time.Time{}, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "empty date expression",
		}
	}

	result, err := naturalParser.Parse(input, base.In(loc))
	if err != nil {
		return time.Time{}, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "natural date parse failed",
			Err:     err,
		}
	}
	if result == nil {
		return time.Time{}, &calendar.Error{
			Type:    calendar.ErrParse,
			Message: "no date expression recognized in " + strconv.Quote(input),
		}
	}

	return result.Time.In(loc), nil
}
