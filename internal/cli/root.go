package cli

import (
	"fmt"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/storage"
	"github.com/juliexu77/babyrhythm/internal/suggester"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// Engine bundles everything an evaluation needs: resolved settings, the
// caregiver's timezone, the trailing event window, and a ready evaluator.
type Engine struct {
	Settings  models.Settings
	Location  *time.Location
	Cfg       pattern.Config
	Events    []models.ActivityEvent
	Now       time.Time
	Evaluator *suggester.Evaluator
}

// Engine loads the evaluation inputs from the store. Every command builds a
// fresh one; nothing is cached between invocations.
func (c *Context) Engine() (*Engine, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	loc, err := timeutil.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(loc)
	since := now.AddDate(0, 0, -(constants.PatternWindowDays + 1))
	events, err := c.Store.GetEventsSince(settings.Household, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	cfg := pattern.ConfigFromSettings(settings, loc)
	return &Engine{
		Settings:  settings,
		Location:  loc,
		Cfg:       cfg,
		Events:    events,
		Now:       now,
		Evaluator: suggester.New(c.Store, cfg, settings.Household),
	}, nil
}

// ParseSubPattern resolves a user-entered sub-pattern argument.
func ParseSubPattern(name string) (pattern.SubPattern, error) {
	sub, ok := pattern.Parse(name)
	if !ok {
		return "", fmt.Errorf("unknown sub-pattern %q (valid: bedtime, morningWake, feed, firstDaytimeNap)", name)
	}
	return sub, nil
}
