package cli

import (
	"fmt"
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

type EventsCmd struct {
	Days   int    `help:"How many trailing days to show." default:"3"`
	All    bool   `help:"Show the full event history, not just the trailing days."`
	Delete string `help:"Delete an event by id instead of listing." placeholder:"ID"`
}

func (cmd *EventsCmd) Run(ctx *Context) error {
	if cmd.Delete != "" {
		return cmd.deleteEvent(ctx)
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	events := eng.Events
	header := fmt.Sprintf("Events (last %d days)", cmd.Days)
	cutoff := timeutil.DateKey(eng.Now.AddDate(0, 0, -(cmd.Days - 1)))
	if cmd.All {
		events, err = ctx.Store.GetAllEvents(eng.Settings.Household)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		header = "Events"
		cutoff = ""
	}

	fmt.Println(titleStyle.Render(header))
	shown := 0
	for _, e := range events {
		day := timeutil.EventDateKey(e, eng.Location)
		if day < cutoff {
			continue
		}
		fmt.Println(formatEvent(e, eng.Location, day))
		shown++
	}
	if shown == 0 {
		fmt.Println(dimStyle.Render("No events logged yet. Try `babyrhythm log feed`."))
	}
	return nil
}

func (cmd *EventsCmd) deleteEvent(ctx *Context) error {
	e, err := ctx.Store.GetEvent(cmd.Delete)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEvent(cmd.Delete); err != nil {
		return err
	}
	fmt.Printf("Deleted %s event %s\n", e.Kind, e.ID)
	return nil
}

func formatEvent(e models.ActivityEvent, loc *time.Location, day string) string {
	when := e.StartTime
	if when == "" {
		m, ok := timeutil.EventStartMinutes(e, loc)
		if ok {
			when = timeutil.FormatMinutes(m)
		}
	}

	line := fmt.Sprintf("  %s  %-8s %-9s", day, when, e.Kind)
	if e.EndTime != "" {
		line += fmt.Sprintf(" until %s", e.EndTime)
	}
	switch {
	case e.Duration != "":
		line += fmt.Sprintf(" (%s)", e.Duration)
	case e.HasSpan():
		if start, ok := timeutil.EventStartMinutes(e, loc); ok {
			if end, ok := timeutil.EventEndMinutes(e); ok {
				line += fmt.Sprintf(" (%s)", timeutil.FormatDurationMinutes(timeutil.SpanMinutes(start, end)))
			}
		}
	}
	if vol := e.Attr(models.AttrFeedVolume); vol != "" {
		line += fmt.Sprintf(" %s%s", vol, e.Attr(models.AttrFeedUnit))
	}
	if text := e.Attr(models.AttrNoteText); text != "" {
		line += fmt.Sprintf(" %q", text)
	}
	return line
}
