package suggester

import (
	"fmt"
	"testing"
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/storage"
)

var testCfg = pattern.Config{NightStartHour: 19, NightEndHour: 7, Location: time.UTC}

// The fixture day; history builders count days back from it.
func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func nightSleep(daysAgo int, start, end string) models.ActivityEvent {
	return models.ActivityEvent{
		ID:        fmt.Sprintf("night-%d", daysAgo),
		Household: "default",
		Kind:      models.KindNap,
		LoggedAt:  time.Date(2026, 3, 10-daysAgo, 20, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func feedAt(daysAgo int, start string) models.ActivityEvent {
	return models.ActivityEvent{
		ID:        fmt.Sprintf("feed-%d-%s", daysAgo, start),
		Household: "default",
		Kind:      models.KindFeed,
		LoggedAt:  time.Date(2026, 3, 10-daysAgo, 19, 0, 0, 0, time.UTC),
		StartTime: start,
	}
}

// bedtimeWeek is seven settled nights ending yesterday, all starting
// 7:30 PM, enough for a confident pattern with median 1170.
func bedtimeWeek() []models.ActivityEvent {
	var events []models.ActivityEvent
	for d := 1; d <= 7; d++ {
		events = append(events, nightSleep(d, "7:30 PM", "6:45 AM"))
	}
	return events
}

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return New(storage.NewMemoryStore(), testCfg, "default")
}

func TestEvaluateSubGraceGating(t *testing.T) {
	ev := newEvaluator(t)
	events := bedtimeWeek()

	tests := []struct {
		name string
		now  time.Time
		want State
	}{
		{name: "afternoon, long before the habit", now: at(15, 0), want: StateTooEarly},
		{name: "at the median", now: at(19, 30), want: StateTooEarly},
		{name: "one minute inside grace", now: at(20, 59), want: StateTooEarly},
		{name: "exactly grace past the median", now: at(21, 0), want: StateSuggested},
		{name: "well past grace", now: at(22, 15), want: StateSuggested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := ev.EvaluateSub(pattern.SubBedtime, events, tt.now)
			if err != nil {
				t.Fatalf("EvaluateSub() error = %v", err)
			}
			if eval.State != tt.want {
				t.Errorf("state at %s = %s, want %s", tt.now.Format("3:04 PM"), eval.State, tt.want)
			}
		})
	}
}

func TestEvaluateSubNoPattern(t *testing.T) {
	ev := newEvaluator(t)
	events := []models.ActivityEvent{
		nightSleep(1, "7:30 PM", "6:45 AM"),
		nightSleep(2, "7:30 PM", "6:45 AM"),
	}

	eval, err := ev.EvaluateSub(pattern.SubBedtime, events, at(21, 30))
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if eval.State != StateNoPattern {
		t.Errorf("state = %s, want %s with only 2 qualifying nights", eval.State, StateNoPattern)
	}
}

func TestEvaluateSubBelowConfidence(t *testing.T) {
	ev := newEvaluator(t)
	// Exactly at the evidence floor: consistent, but too little history for
	// the confidence bar.
	events := []models.ActivityEvent{
		nightSleep(1, "7:30 PM", "6:45 AM"),
		nightSleep(2, "7:30 PM", "6:45 AM"),
		nightSleep(3, "7:30 PM", "6:45 AM"),
	}

	eval, err := ev.EvaluateSub(pattern.SubBedtime, events, at(21, 30))
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if eval.State != StateBelowConfidence {
		t.Errorf("state = %s, want %s", eval.State, StateBelowConfidence)
	}
	if eval.Stats == nil {
		t.Fatal("Stats = nil, want statistics kept for display")
	}
}

func TestEvaluateSubBedtimeAlreadyLogged(t *testing.T) {
	ev := newEvaluator(t)
	events := bedtimeWeek()
	// Tonight's still-open session, logged a few minutes ago.
	events = append(events, models.ActivityEvent{
		ID:        "tonight",
		Household: "default",
		Kind:      models.KindNap,
		LoggedAt:  at(19, 40),
		StartTime: "7:35 PM",
	})

	eval, err := ev.EvaluateSub(pattern.SubBedtime, events, at(21, 30))
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if eval.State != StateAlreadyLogged {
		t.Errorf("state = %s, want %s", eval.State, StateAlreadyLogged)
	}
}

func TestEvaluateSubDismissed(t *testing.T) {
	ev := newEvaluator(t)
	events := bedtimeWeek()
	now := at(21, 30)

	if err := ev.Dismiss(pattern.SubBedtime, now); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}

	eval, err := ev.EvaluateSub(pattern.SubBedtime, events, now)
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if eval.State != StateDismissed {
		t.Errorf("state = %s, want %s", eval.State, StateDismissed)
	}
}

func TestEvaluateSubRecentlyAccepted(t *testing.T) {
	ev := newEvaluator(t)
	events := bedtimeWeek()
	now := at(21, 30)

	if err := ev.Accept(pattern.SubBedtime, now); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	eval, err := ev.EvaluateSub(pattern.SubBedtime, events, now)
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if eval.State != StateRecentlyAccepted {
		t.Errorf("state = %s, want %s", eval.State, StateRecentlyAccepted)
	}

	// The acceptance is sub-pattern-scoped: a due feed is unaffected.
	var feeds []models.ActivityEvent
	for d := 1; d <= 7; d++ {
		feeds = append(feeds, feedAt(d, "7:00 PM"))
	}
	feedEval, err := ev.EvaluateSub(pattern.SubFeed, feeds, now)
	if err != nil {
		t.Fatalf("EvaluateSub() error = %v", err)
	}
	if feedEval.State != StateSuggested {
		t.Errorf("feed state = %s, want %s", feedEval.State, StateSuggested)
	}
}

func TestEvaluateSingleWinnerByPriority(t *testing.T) {
	ev := newEvaluator(t)

	// Both bedtime (median 7:30 PM, grace 90) and feed (median 7:00 PM,
	// grace 45) are overdue at 9:30 PM; only the higher-priority bedtime
	// may surface.
	events := bedtimeWeek()
	for d := 1; d <= 7; d++ {
		events = append(events, feedAt(d, "7:00 PM"))
	}

	winner, evaluations, err := ev.Evaluate(events, at(21, 30))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if winner == nil {
		t.Fatal("Evaluate() winner = nil, want bedtime suggestion")
	}
	if winner.SubPattern != pattern.SubBedtime {
		t.Errorf("winner = %s, want %s", winner.SubPattern, pattern.SubBedtime)
	}
	if len(evaluations) != len(pattern.Priority) {
		t.Errorf("len(evaluations) = %d, want %d", len(evaluations), len(pattern.Priority))
	}

	var feedState State
	for _, e := range evaluations {
		if e.SubPattern == pattern.SubFeed {
			feedState = e.State
		}
	}
	if feedState != StateSuggested {
		t.Errorf("feed state = %s, want %s kept for display even though bedtime won", feedState, StateSuggested)
	}
}

func TestEvaluateSubFeedAlreadyLogged(t *testing.T) {
	ev := newEvaluator(t)
	// Median 7:00 PM with grace 45: feeds from 6:15 PM on satisfy the habit.
	var events []models.ActivityEvent
	for d := 1; d <= 13; d++ {
		events = append(events, feedAt(d, "7:00 PM"))
	}

	t.Run("feed inside the habitual window counts", func(t *testing.T) {
		withFeed := append(append([]models.ActivityEvent{}, events...), feedAt(0, "6:30 PM"))
		eval, err := ev.EvaluateSub(pattern.SubFeed, withFeed, at(19, 50))
		if err != nil {
			t.Fatalf("EvaluateSub() error = %v", err)
		}
		if eval.State != StateAlreadyLogged {
			t.Errorf("state = %s, want %s", eval.State, StateAlreadyLogged)
		}
	})

	t.Run("feed just outside the window does not count", func(t *testing.T) {
		withFeed := append(append([]models.ActivityEvent{}, events...), feedAt(0, "6:14 PM"))
		eval, err := ev.EvaluateSub(pattern.SubFeed, withFeed, at(19, 50))
		if err != nil {
			t.Fatalf("EvaluateSub() error = %v", err)
		}
		if eval.State != StateSuggested {
			t.Errorf("state = %s, want %s: a 6:14 PM feed is a minute too early to satisfy the habit", eval.State, StateSuggested)
		}
	})
}

func TestEvaluateSubMorningWake(t *testing.T) {
	// Seven settled nights whose wake-ups all landed before today, so
	// nothing reads as today's wake. Median wake 7:00 AM, overdue from 8:00.
	var history []models.ActivityEvent
	for d := 2; d <= 8; d++ {
		history = append(history, nightSleep(d, "11:30 PM", "7:00 AM"))
	}

	tests := []struct {
		name   string
		now    time.Time
		extra  []models.ActivityEvent
		want   State
	}{
		{
			name: "inside the night window never nudges",
			now:  at(5, 0),
			want: StateTooEarly,
		},
		{
			name: "before the overdue hour",
			now:  at(7, 55),
			want: StateTooEarly,
		},
		{
			name: "a full hour past the median wake",
			now:  at(8, 5),
			want: StateSuggested,
		},
		{
			name: "open session started minutes ago suppresses the nudge",
			now:  at(8, 5),
			extra: []models.ActivityEvent{{
				ID:        "resettle",
				Household: "default",
				Kind:      models.KindNap,
				LoggedAt:  at(6, 30),
				StartTime: "6:30 AM",
			}},
			want: StateTooEarly,
		},
		{
			name: "last night's sleep ended today",
			now:  at(8, 5),
			extra: []models.ActivityEvent{{
				ID:        "lastnight",
				Household: "default",
				Kind:      models.KindNap,
				LoggedAt:  time.Date(2026, 3, 9, 23, 35, 0, 0, time.UTC),
				StartTime: "11:30 PM",
				EndTime:   "6:50 AM",
			}},
			want: StateAlreadyLogged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := newEvaluator(t)
			events := append(append([]models.ActivityEvent{}, history...), tt.extra...)
			eval, err := ev.EvaluateSub(pattern.SubMorningWake, events, tt.now)
			if err != nil {
				t.Fatalf("EvaluateSub() error = %v", err)
			}
			if eval.State != tt.want {
				t.Errorf("state = %s, want %s", eval.State, tt.want)
			}
		})
	}
}

func TestSuggestionContent(t *testing.T) {
	ev := newEvaluator(t)
	winner, _, err := ev.Evaluate(bedtimeWeek(), at(21, 30))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if winner == nil {
		t.Fatal("Evaluate() winner = nil")
	}
	if winner.SuggestedTimeLabel != "7:30 PM" {
		t.Errorf("SuggestedTimeLabel = %q, want %q", winner.SuggestedTimeLabel, "7:30 PM")
	}
	if winner.MedianMinutes != 1170 {
		t.Errorf("MedianMinutes = %d, want 1170", winner.MedianMinutes)
	}
	if winner.Message == "" {
		t.Error("Message is empty")
	}
}
