// Command example runs the scheduling pipeline end to end on a small sample
// data set: raw events are expanded through a view window, resolved into
// slots, laid out, and finally rescheduled through a simulated drag.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/zebedeu/agendcore/calendar"
	"github.com/zebedeu/agendcore/interaction"
	"github.com/zebedeu/agendcore/layout"
	"github.com/zebedeu/agendcore/recurrence"
	"github.com/zebedeu/agendcore/slot"
	"github.com/zebedeu/agendcore/timeparse"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC1123Z,
	}))
	slog.SetDefault(logger)

	events := []calendar.Event{
		{
			ID:    "standup",
			Title: "Daily standup",
			Start: "2024-03-04T09:30:00Z",
			End:   "2024-03-04T09:45:00Z",
			// Weekday standup, expanded per view window.
			RecurrenceRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
			Color:          "#4f46e5",
		},
		{
			ID:    "review",
			Title: "Design review",
			Start: "2024-03-05 14:00",
			End:   "2024-03-05 15:30",
			Color: "#16a34a",
		},
		{
			ID:       "offsite",
			Title:    "Team offsite",
			Start:    "2024-03-06",
			End:      "2024-03-08",
			AllDay:   true,
			MultiDay: true,
		},
	}

	windowStart, err := timeparse.Normalize("2024-03-04", "Europe/Lisbon")
	if err != nil {
		logger.Error("bad window start", "error", err)
		os.Exit(1)
	}
	window := calendar.ViewWindow{
		Start:    windowStart,
		End:      windowStart.AddDate(0, 0, 7),
		Timezone: "Europe/Lisbon",
	}

	expander := recurrence.NewExpander(recurrence.Options{Logger: logger})
	instances := expander.Expand(events, window)
	logger.Info("expanded view window", "events", len(events), "instances", len(instances))

	day := windowStart.AddDate(0, 0, 1) // Tuesday
	var timed []calendar.EventInstance
	for _, inst := range slot.ResolveDay(day, instances) {
		if !inst.AllDay {
			timed = append(timed, inst)
		}
	}
	positioned := layout.LayoutTimeGrid(timed, 40, 30, day)
	for _, pe := range positioned {
		fmt.Printf("%-16s %s  left=%.0f%% width=%.0f%% height=%.0fpx\n",
			pe.Title, pe.Start.Format("Mon 15:04"), pe.Layout.Left, pe.Layout.Width, pe.Layout.Height)
	}

	lane := slot.ResolveAllDayLane(day.AddDate(0, 0, 1), instances)
	for _, inst := range lane {
		fmt.Printf("%-16s all-day lane %s..%s\n",
			inst.Title, inst.Start.Format("Jan 2"), inst.End.Format("Jan 2"))
	}

	engine := interaction.NewEngine(interaction.Config{
		Callbacks: calendar.Callbacks{
			OnEventUpdate: func(inst calendar.EventInstance) {
				logger.Info("event rescheduled",
					"id", inst.ID,
					"start", inst.Start.Format(time.RFC3339),
					"end", inst.End.Format(time.RFC3339))
			},
			OnEventClick: func(inst calendar.EventInstance) {
				logger.Info("event clicked", "id", inst.ID)
			},
		},
		Granularity:     calendar.DefaultGranularity,
		SlotPixelHeight: 40,
		DayWidthPixels:  160,
		Logger:          logger,
	})
	engine.SetInstances(instances)

	// Drag the design review two days later.
	if err := engine.BeginDrag("review", day); err != nil {
		logger.Error("drag rejected", "error", err)
		os.Exit(1)
	}
	if err := engine.EndDrag(day.AddDate(0, 0, 2), 12); err != nil {
		logger.Error("drag failed", "error", err)
		os.Exit(1)
	}
}
