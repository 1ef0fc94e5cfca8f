package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

type LogCmd struct {
	Feed   LogFeedCmd   `cmd:"" help:"Log a feed."`
	Nap    LogNapCmd    `cmd:"" help:"Log a nap or night sleep."`
	Diaper LogDiaperCmd `cmd:"" help:"Log a diaper change."`
	Note   LogNoteCmd   `cmd:"" help:"Log a free-form note."`
}

type logCommon struct {
	Start    string `help:"When it happened, 12-hour clock (e.g. \"7:30 PM\"). Defaults to the logging time."`
	End      string `help:"When it ended, if it spans time (e.g. \"7:00 AM\"). May wrap past midnight."`
	Duration string `help:"How long it lasted (e.g. \"1h 30m\")."`
}

func (l *logCommon) validateTimes() error {
	if l.Start != "" {
		if _, err := timeutil.ParseClockMinutes(l.Start); err != nil {
			return err
		}
	}
	if l.End != "" {
		if _, err := timeutil.ParseClockMinutes(l.End); err != nil {
			return err
		}
	}
	if l.Duration != "" {
		if _, err := timeutil.ParseDurationMinutes(l.Duration); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) logEvent(kind models.ActivityKind, common logCommon, attrs map[string]string) error {
	if err := common.validateTimes(); err != nil {
		return err
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	event := models.ActivityEvent{
		ID:         uuid.NewString(),
		Household:  settings.Household,
		Kind:       kind,
		LoggedAt:   time.Now(),
		StartTime:  common.Start,
		EndTime:    common.End,
		Duration:   common.Duration,
		Attributes: attrs,
	}
	if err := c.Store.AddEvent(event); err != nil {
		return err
	}

	fmt.Printf("Logged %s (%s)\n", kind, event.ID)
	return nil
}

type LogFeedCmd struct {
	logCommon
	Volume string `help:"Amount fed (e.g. 120)."`
	Unit   string `help:"Unit for the volume (ml, oz)." default:"ml"`
}

func (cmd *LogFeedCmd) Run(ctx *Context) error {
	attrs := map[string]string{}
	if cmd.Volume != "" {
		attrs[models.AttrFeedVolume] = cmd.Volume
		attrs[models.AttrFeedUnit] = cmd.Unit
	}
	return ctx.logEvent(models.KindFeed, cmd.logCommon, attrs)
}

type LogNapCmd struct {
	logCommon
}

func (cmd *LogNapCmd) Run(ctx *Context) error {
	return ctx.logEvent(models.KindNap, cmd.logCommon, nil)
}

type LogDiaperCmd struct {
	logCommon
}

func (cmd *LogDiaperCmd) Run(ctx *Context) error {
	return ctx.logEvent(models.KindDiaper, cmd.logCommon, nil)
}

type LogNoteCmd struct {
	logCommon
	Text string `arg:"" help:"Note text."`
}

func (cmd *LogNoteCmd) Run(ctx *Context) error {
	return ctx.logEvent(models.KindNote, cmd.logCommon, map[string]string{models.AttrNoteText: cmd.Text})
}
