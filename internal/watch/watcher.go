// Package watch drives the suggestion engine on a periodic tick. The tick
// only triggers re-evaluation; every evaluation re-reads events and flags,
// so overlapping or missed ticks are harmless.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/logger"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/storage"
	"github.com/juliexu77/babyrhythm/internal/suggester"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

// Notify is the delivery hook; swapped out in tests.
var Notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Watcher re-evaluates the suggester every tick and delivers the winning
// suggestion as a desktop notification.
type Watcher struct {
	store    storage.Provider
	interval time.Duration

	// lastSurfaced dedupes notifications within one run; across runs the
	// dismissal/acceptance flags are the only suppression that matters.
	lastSurfaced string
}

func New(store storage.Provider) *Watcher {
	return &Watcher{store: store, interval: constants.SuggestTickInterval}
}

// Run ticks until the context is cancelled. The first evaluation happens
// immediately rather than one interval in.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			w.tick(now)
		}
	}
}

// Tick runs a single evaluation pass; exposed for one-shot use and tests.
func (w *Watcher) Tick(now time.Time) (*suggester.Suggestion, error) {
	return w.evaluate(now)
}

func (w *Watcher) tick(now time.Time) {
	sugg, err := w.evaluate(now)
	if err != nil {
		logger.Warn("Suggestion evaluation failed", "error", err)
		return
	}
	if sugg == nil {
		return
	}

	settings, err := w.store.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings", "error", err)
		return
	}

	loc, err := timeutil.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.Local
	}
	key := fmt.Sprintf("%s:%s", sugg.SubPattern, timeutil.DateKey(now.In(loc)))
	if key == w.lastSurfaced {
		return
	}
	w.lastSurfaced = key

	logger.Info("Surfacing suggestion", "sub_pattern", sugg.SubPattern, "time", sugg.SuggestedTimeLabel, "confidence", sugg.Confidence)
	if settings.NotificationsEnabled {
		if err := Notify("babyrhythm", sugg.Message); err != nil {
			logger.Warn("Notification delivery failed", "error", err)
		}
	}
}

func (w *Watcher) evaluate(now time.Time) (*suggester.Suggestion, error) {
	settings, err := w.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := timeutil.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -(constants.PatternWindowDays + 1))
	events, err := w.store.GetEventsSince(settings.Household, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	cfg := pattern.ConfigFromSettings(settings, loc)
	ev := suggester.New(w.store, cfg, settings.Household)
	sugg, _, err := ev.Evaluate(events, now)
	return sugg, err
}
