// Package predictor produces a same-day nap-count prediction by blending the
// recently observed routine with the age-indexed baseline tables.
package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/juliexu77/babyrhythm/internal/baseline"
	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/transition"
)

// Prediction is the schedule forecast consumers display.
type Prediction struct {
	NapCountToday   int    `json:"nap_count_today"`
	Confidence      string `json:"confidence"` // high | medium | low
	IsTransitioning bool   `json:"is_transitioning"`
	TransitionNote  string `json:"transition_note,omitempty"`
	Rationale       string `json:"rationale"`
}

// Predict forecasts today's daytime nap count. ageWeeks may be nil when no
// birthdate is configured; in that case the predictor refuses to guess and
// returns an explicit low-confidence no-op result. Pure: same inputs, same
// prediction.
func Predict(events []models.ActivityEvent, ageWeeks *int, now time.Time, cfg pattern.Config) Prediction {
	// Completed days only: today's count is still in progress.
	yesterday := now.AddDate(0, 0, -1)
	counts := pattern.DailyDaytimeNapCounts(events, constants.NapVarianceDays, yesterday, cfg)

	recentAvg, haveRecent := rollingAverage(counts, constants.RecentNapAverageDays)
	variance := napVariance(counts)
	transitioning := variance > constants.TransitionVarianceBar

	if ageWeeks == nil {
		return Prediction{
			Confidence:      "low",
			IsTransitioning: transitioning,
			Rationale:       "No birthdate configured, so there is no age baseline to predict against. Set one with `babyrhythm settings --birthdate`.",
		}
	}

	row, ok := baseline.Lookup(*ageWeeks)
	if !ok {
		return Prediction{
			Confidence:      "low",
			IsTransitioning: transitioning,
			Rationale:       "The configured birthdate is invalid for a baseline lookup.",
		}
	}

	if !haveRecent {
		return Prediction{
			NapCountToday:   row.NapCount,
			Confidence:      "medium",
			IsTransitioning: transitioning,
			Rationale:       fmt.Sprintf("No recent nap data logged; using the typical count of %d naps for a %d-week-old.", row.NapCount, *ageWeeks),
		}
	}

	recentCount := int(math.Round(recentAvg))

	switch {
	case math.Abs(recentAvg-float64(row.NapCount)) <= 1:
		return Prediction{
			NapCountToday:   recentCount,
			Confidence:      "high",
			IsTransitioning: transitioning,
			Rationale:       fmt.Sprintf("Recent days average %.1f naps, in line with the %d-nap baseline for this age.", recentAvg, row.NapCount),
		}

	case recentAvg < float64(row.NapCount):
		// Fewer naps than the age baseline reads as a possible downward
		// transition. Only note it when the day-to-day counts actually look
		// unsettled, and only if the raw counts support the claim.
		p := Prediction{
			NapCountToday:   recentCount,
			Confidence:      "medium",
			IsTransitioning: transitioning,
			Rationale:       fmt.Sprintf("Recent days average %.1f naps, below the %d-nap baseline for this age.", recentAvg, row.NapCount),
		}
		if transitioning {
			p.TransitionNote = transitionNote(row.NapCount, recentCount, counts, *ageWeeks)
		}
		return p

	default:
		// More naps than the baseline usually means short, interrupted naps
		// inflating the count; the baseline is the better guess.
		return Prediction{
			NapCountToday:   row.NapCount,
			Confidence:      "medium",
			IsTransitioning: transitioning,
			Rationale:       fmt.Sprintf("Recent days average %.1f naps, above the %d-nap baseline; the extras are likely short or interrupted naps, so the baseline wins.", recentAvg, row.NapCount),
		}
	}
}

// transitionNote phrases the downward transition, running the claim through
// the same validator that guards external generators: if no recent day ever
// hit the "from" count, the claim downgrades to a stabilizing statement.
func transitionNote(fromNaps, toNaps int, counts []int, ageWeeks int) string {
	result := transition.ValidateClaim(fromNaps, toNaps, counts)
	if !result.Valid {
		return result.Statement
	}
	note := fmt.Sprintf("Baby may be transitioning from %d to %d naps per day.", fromNaps, toNaps)
	if tw, ok := baseline.TransitionFor(ageWeeks); ok && tw.FromNaps == fromNaps && tw.ToNaps == toNaps {
		note += " This drop is common at this age."
	}
	return note
}

// rollingAverage averages the trailing n entries of the count series.
func rollingAverage(counts []int, n int) (float64, bool) {
	if len(counts) == 0 {
		return 0, false
	}
	if len(counts) > n {
		counts = counts[len(counts)-n:]
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	return float64(sum) / float64(len(counts)), true
}

// napVariance is the population variance of the trailing count series.
func napVariance(counts []int) float64 {
	if len(counts) < 2 {
		return 0
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))
	var sq float64
	for _, c := range counts {
		d := float64(c) - mean
		sq += d * d
	}
	return sq / float64(len(counts))
}
