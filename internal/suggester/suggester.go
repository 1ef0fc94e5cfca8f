// Package suggester decides, once per evaluation tick, whether a habitual
// activity appears to have been forgotten and is worth nudging about. It is
// a pure function of the current time, the event history, and externally
// owned dismissal/acceptance flags; it keeps no state of its own, so
// concurrent re-evaluations are safe.
package suggester

import (
	"fmt"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

// State is the outcome of evaluating one sub-pattern for one day.
type State string

const (
	StateNotEvaluated     State = "not_evaluated"
	StateNoPattern        State = "no_pattern"        // terminal for the day
	StateAlreadyLogged    State = "already_logged"    // terminal
	StateBelowConfidence  State = "below_confidence"  // terminal
	StateTooEarly         State = "too_early"         // retry on a later tick
	StateDismissed        State = "dismissed"         // terminal for the day
	StateRecentlyAccepted State = "recently_accepted" // terminal, short-lived
	StateSuggested        State = "suggested"
)

// FlagStore is the externally-owned key-value surface holding dismissal and
// acceptance flags. The engine only reads and writes keys through it; the
// caller owns durability and read-after-write consistency.
type FlagStore interface {
	GetFlag(key string) (string, bool, error)
	PutFlag(key, value string, ttl time.Duration) error
}

// Suggestion is a candidate nudge. It exists only transiently; acceptance
// and dismissal live in the FlagStore.
type Suggestion struct {
	SubPattern         pattern.SubPattern `json:"sub_pattern"`
	SuggestedTimeLabel string             `json:"suggested_time_label"`
	MedianMinutes      int                `json:"median_minutes"`
	Confidence         float64            `json:"confidence"`
	Message            string             `json:"message"`
}

// Evaluation is the per-sub-pattern outcome of one tick, kept for
// explain-style display.
type Evaluation struct {
	SubPattern pattern.SubPattern  `json:"sub_pattern"`
	State      State               `json:"state"`
	Stats      *pattern.Statistics `json:"stats,omitempty"`
}

// Evaluator evaluates all sub-patterns for one household.
type Evaluator struct {
	flags     FlagStore
	cfg       pattern.Config
	household string
}

func New(flags FlagStore, cfg pattern.Config, household string) *Evaluator {
	return &Evaluator{flags: flags, cfg: cfg, household: household}
}

// Evaluate runs one tick over every sub-pattern in priority order and
// returns the winning suggestion, if any. At most one suggestion surfaces
// per tick: the first sub-pattern to reach StateSuggested wins, later ones
// keep their state for display but yield no suggestion.
func (ev *Evaluator) Evaluate(events []models.ActivityEvent, now time.Time) (*Suggestion, []Evaluation, error) {
	var winner *Suggestion
	evaluations := make([]Evaluation, 0, len(pattern.Priority))

	for _, sub := range pattern.Priority {
		eval, sugg, err := ev.evaluateSub(sub, events, now)
		if err != nil {
			return nil, nil, err
		}
		evaluations = append(evaluations, eval)
		if winner == nil && sugg != nil {
			winner = sugg
		}
	}
	return winner, evaluations, nil
}

// EvaluateSub evaluates a single sub-pattern.
func (ev *Evaluator) EvaluateSub(sub pattern.SubPattern, events []models.ActivityEvent, now time.Time) (Evaluation, error) {
	eval, _, err := ev.evaluateSub(sub, events, now)
	return eval, err
}

func (ev *Evaluator) evaluateSub(sub pattern.SubPattern, events []models.ActivityEvent, now time.Time) (Evaluation, *Suggestion, error) {
	eval := Evaluation{SubPattern: sub, State: StateNotEvaluated}
	local := now.In(ev.cfg.Location)

	stats := pattern.Analyze(events, sub, now, ev.cfg)
	eval.Stats = stats
	if stats == nil {
		eval.State = StateNoPattern
		return eval, nil, nil
	}

	if ev.alreadyLogged(sub, stats, events, local) {
		eval.State = StateAlreadyLogged
		return eval, nil, nil
	}

	dismissed, err := ev.isDismissed(sub, local)
	if err != nil {
		return eval, nil, err
	}
	if dismissed {
		eval.State = StateDismissed
		return eval, nil, nil
	}

	accepted, err := ev.isRecentlyAccepted(sub, now)
	if err != nil {
		return eval, nil, err
	}
	if accepted {
		eval.State = StateRecentlyAccepted
		return eval, nil, nil
	}

	if stats.Confidence < sub.RequiredConfidence() {
		eval.State = StateBelowConfidence
		return eval, nil, nil
	}

	var due bool
	if sub == pattern.SubMorningWake {
		due = ev.morningWakeOverdue(stats, events, local)
	} else {
		// Signed, wrap-adjusted distance past the median: negative means the
		// habitual time hasn't arrived yet today.
		delta := timeutil.SignedDelta(minutesOfDay(local), stats.MedianMinutes)
		due = delta >= stats.GracePeriodMinutes
	}
	if !due {
		eval.State = StateTooEarly
		return eval, nil, nil
	}

	eval.State = StateSuggested
	return eval, ev.buildSuggestion(sub, stats), nil
}

// alreadyLogged decides whether today's instance of the sub-pattern is
// already in the log, which makes a nudge pointless.
func (ev *Evaluator) alreadyLogged(sub pattern.SubPattern, stats *pattern.Statistics, events []models.ActivityEvent, local time.Time) bool {
	today := timeutil.DateKey(local)

	switch sub {
	case pattern.SubMorningWake:
		// The canonical record of today's wake-up is a sleep session anchored
		// to the prior night: search for any night sleep whose end date is
		// today, whether it started yesterday or after midnight today.
		for _, e := range events {
			if !timeutil.IsNightSleep(e, ev.cfg.Location, ev.cfg.NightStartHour, ev.cfg.NightEndHour) {
				continue
			}
			if wakeDay, ok := timeutil.WakeDateKey(e, ev.cfg.Location); ok && wakeDay == today {
				return true
			}
		}
		return false

	case pattern.SubBedtime:
		// Any night-sleep start logged today counts, settled or still open.
		for _, e := range events {
			if timeutil.EventDateKey(e, ev.cfg.Location) != today {
				continue
			}
			if timeutil.IsNightSleep(e, ev.cfg.Location, ev.cfg.NightStartHour, ev.cfg.NightEndHour) {
				return true
			}
		}
		return false

	case pattern.SubFirstDaytimeNap:
		for _, e := range events {
			if timeutil.EventDateKey(e, ev.cfg.Location) != today {
				continue
			}
			if timeutil.IsDaytimeNap(e, ev.cfg.Location, ev.cfg.NightStartHour, ev.cfg.NightEndHour) {
				return true
			}
		}
		return false

	case pattern.SubFeed:
		// A feed logged today at or after the approach of the median window
		// satisfies the habit; earlier feeds belong to earlier windows.
		for _, e := range events {
			day, m, ok := pattern.QualifyingValue(e, pattern.SubFeed, ev.cfg)
			if !ok || day != today {
				continue
			}
			if int(m) >= stats.MedianMinutes-stats.GracePeriodMinutes {
				return true
			}
		}
		return false
	}
	return false
}

// morningWakeOverdue applies the wake-specific gating: we must plausibly be
// in the morning, a just-started night session must not trigger a wake-up
// nudge, and the learned median wake time must be a full hour behind us.
func (ev *Evaluator) morningWakeOverdue(stats *pattern.Statistics, events []models.ActivityEvent, local time.Time) bool {
	// Outside the daytime span between the night window's end and its next
	// start there is no meaningful "overdue wake-up".
	if timeutil.InNightWindow(local.Hour(), ev.cfg.NightStartHour, ev.cfg.NightEndHour) {
		return false
	}

	nowMin := minutesOfDay(local)

	// An open night session that just started (within the last 2 hours)
	// means the baby was only just put down, likely a late-evening entry or
	// an early-morning resettle.
	for _, e := range events {
		if e.EndTime != "" {
			continue
		}
		if !timeutil.IsNightSleep(e, ev.cfg.Location, ev.cfg.NightStartHour, ev.cfg.NightEndHour) {
			continue
		}
		if local.Sub(e.LoggedAt.In(ev.cfg.Location)) > constants.OpenSleepExclusionWindow+24*time.Hour {
			continue // stale open session from an earlier day
		}
		startMin, ok := timeutil.EventStartMinutes(e, ev.cfg.Location)
		if !ok {
			continue
		}
		if timeutil.ElapsedSince(nowMin, startMin) <= int(constants.OpenSleepExclusionWindow.Minutes()) {
			return false
		}
	}

	return nowMin >= stats.MedianMinutes+constants.MorningWakeOverdueMin
}

func (ev *Evaluator) buildSuggestion(sub pattern.SubPattern, stats *pattern.Statistics) *Suggestion {
	label := timeutil.FormatMinutes(stats.MedianMinutes)
	var msg string
	switch sub {
	case pattern.SubBedtime:
		msg = fmt.Sprintf("Looks like bedtime hasn't been logged yet. It usually starts around %s.", label)
	case pattern.SubMorningWake:
		msg = fmt.Sprintf("Did baby wake up this morning? Wake-up is usually around %s.", label)
	case pattern.SubFeed:
		msg = fmt.Sprintf("Did you forget to log a feed? Feeds usually happen around %s.", label)
	case pattern.SubFirstDaytimeNap:
		msg = fmt.Sprintf("Did you forget to log the first nap? It usually starts around %s.", label)
	default:
		msg = fmt.Sprintf("Did you forget to log %s around %s?", sub.Label(), label)
	}
	return &Suggestion{
		SubPattern:         sub,
		SuggestedTimeLabel: label,
		MedianMinutes:      stats.MedianMinutes,
		Confidence:         stats.Confidence,
		Message:            msg,
	}
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
