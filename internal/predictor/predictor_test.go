package predictor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
)

var testCfg = pattern.Config{NightStartHour: 19, NightEndHour: 7, Location: time.UTC}

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

// napDay logs n daytime naps on the given day plus a feed, so the day counts
// as logged even when n is 0.
func napDay(daysAgo, n int) []models.ActivityEvent {
	day := time.Date(2026, 3, 10-daysAgo, 0, 0, 0, 0, time.UTC)
	events := []models.ActivityEvent{{
		ID:        fmt.Sprintf("feed-%d", daysAgo),
		Household: "default",
		Kind:      models.KindFeed,
		LoggedAt:  day.Add(8 * time.Hour),
	}}
	for i := 0; i < n; i++ {
		events = append(events, models.ActivityEvent{
			ID:        fmt.Sprintf("nap-%d-%d", daysAgo, i),
			Household: "default",
			Kind:      models.KindNap,
			LoggedAt:  day.Add(time.Duration(9+2*i) * time.Hour),
		})
	}
	return events
}

func history(countsByDaysAgo map[int]int) []models.ActivityEvent {
	var events []models.ActivityEvent
	for daysAgo, n := range countsByDaysAgo {
		events = append(events, napDay(daysAgo, n)...)
	}
	return events
}

func intPtr(v int) *int { return &v }

func TestPredictWithoutBirthdate(t *testing.T) {
	events := history(map[int]int{1: 2, 2: 2, 3: 2})

	got := Predict(events, nil, testNow, testCfg)
	if got.Confidence != "low" {
		t.Errorf("Confidence = %q, want low", got.Confidence)
	}
	if got.NapCountToday != 0 {
		t.Errorf("NapCountToday = %d, want 0: no baseline means no guess", got.NapCountToday)
	}
	if !strings.Contains(got.Rationale, "--birthdate") {
		t.Errorf("Rationale = %q, want a pointer to the birthdate setting", got.Rationale)
	}
}

func TestPredictNoRecentDataFallsToBaseline(t *testing.T) {
	// 30 weeks: baseline says 3 naps.
	got := Predict(nil, intPtr(30), testNow, testCfg)
	if got.NapCountToday != 3 {
		t.Errorf("NapCountToday = %d, want the 3-nap baseline", got.NapCountToday)
	}
	if got.Confidence != "medium" {
		t.Errorf("Confidence = %q, want medium", got.Confidence)
	}
}

func TestPredictRecentAgreesWithBaseline(t *testing.T) {
	events := history(map[int]int{1: 3, 2: 3, 3: 3, 4: 3, 5: 3})

	got := Predict(events, intPtr(30), testNow, testCfg)
	if got.NapCountToday != 3 {
		t.Errorf("NapCountToday = %d, want 3", got.NapCountToday)
	}
	if got.Confidence != "high" {
		t.Errorf("Confidence = %q, want high when recent data matches the baseline", got.Confidence)
	}
	if got.IsTransitioning {
		t.Error("IsTransitioning = true for a flat series")
	}
}

func TestPredictStableBelowBaseline(t *testing.T) {
	// Settled at 2 naps against a 4-nap baseline (14 weeks): below, but the
	// series is flat, so no transition note.
	events := history(map[int]int{1: 2, 2: 2, 3: 2, 4: 2, 5: 2})

	got := Predict(events, intPtr(14), testNow, testCfg)
	if got.NapCountToday != 2 {
		t.Errorf("NapCountToday = %d, want the observed 2", got.NapCountToday)
	}
	if got.Confidence != "medium" {
		t.Errorf("Confidence = %q, want medium", got.Confidence)
	}
	if got.IsTransitioning {
		t.Error("IsTransitioning = true for a flat series")
	}
	if got.TransitionNote != "" {
		t.Errorf("TransitionNote = %q, want empty without variance", got.TransitionNote)
	}
}

func TestPredictTransitionNote(t *testing.T) {
	// 14 weeks: baseline 4 naps. Counts 4,4,3,3,2 over the last five days:
	// trailing average 2.7, variance 0.56, and a day really did hit 4, so
	// the transition claim stands.
	events := history(map[int]int{1: 2, 2: 3, 3: 3, 4: 4, 5: 4})

	got := Predict(events, intPtr(14), testNow, testCfg)
	if !got.IsTransitioning {
		t.Fatal("IsTransitioning = false, want true for an unsettled series")
	}
	if got.TransitionNote == "" {
		t.Fatal("TransitionNote is empty")
	}
	if !strings.Contains(got.TransitionNote, "transitioning from 4 to 3") {
		t.Errorf("TransitionNote = %q, want the 4 to 3 claim", got.TransitionNote)
	}
}

func TestPredictTransitionNoteAgeTypical(t *testing.T) {
	// At 17 weeks the 4-to-3 drop falls inside the known transition window,
	// so the note gains the age context.
	events := history(map[int]int{1: 2, 2: 3, 3: 3, 4: 4, 5: 4})

	got := Predict(events, intPtr(17), testNow, testCfg)
	if !strings.Contains(got.TransitionNote, "common at this age") {
		t.Errorf("TransitionNote = %q, want the age-typical context", got.TransitionNote)
	}
}

func TestPredictTransitionClaimDowngraded(t *testing.T) {
	// 14 weeks: baseline 4 naps, but no recent day ever hit 4. The note must
	// describe the observed range instead of inventing a "from 4" claim.
	events := history(map[int]int{1: 1, 2: 2, 3: 3, 4: 2, 5: 3})

	got := Predict(events, intPtr(14), testNow, testCfg)
	if !got.IsTransitioning {
		t.Fatal("IsTransitioning = false, want true")
	}
	if !strings.Contains(got.TransitionNote, "stabilizing between 1 and 3") {
		t.Errorf("TransitionNote = %q, want the stabilizing downgrade", got.TransitionNote)
	}
}

func TestPredictAboveBaselinePrefersBaseline(t *testing.T) {
	// 80 weeks: baseline 1 nap. Five naps a day reads as interrupted sleep,
	// not a five-nap schedule.
	events := history(map[int]int{1: 5, 2: 5, 3: 5, 4: 5, 5: 5})

	got := Predict(events, intPtr(80), testNow, testCfg)
	if got.NapCountToday != 1 {
		t.Errorf("NapCountToday = %d, want the 1-nap baseline", got.NapCountToday)
	}
	if got.Confidence != "medium" {
		t.Errorf("Confidence = %q, want medium", got.Confidence)
	}
	if !strings.Contains(got.Rationale, "short or interrupted") {
		t.Errorf("Rationale = %q, want the interrupted-naps explanation", got.Rationale)
	}
}

func TestPredictExcludesToday(t *testing.T) {
	// Today has zero naps so far; that must not drag the average, because
	// the series ends yesterday.
	events := history(map[int]int{0: 0, 1: 3, 2: 3, 3: 3})

	got := Predict(events, intPtr(30), testNow, testCfg)
	if got.NapCountToday != 3 {
		t.Errorf("NapCountToday = %d, want 3: today's partial count must not count", got.NapCountToday)
	}
	if got.Confidence != "high" {
		t.Errorf("Confidence = %q, want high", got.Confidence)
	}
}
