// Package pattern computes timing statistics for one sub-pattern of the
// activity history: median and standard deviation of the minutes-of-day
// values over a trailing window, plus a confidence score gating whether the
// pattern is trustworthy enough to act on.
package pattern

import (
	"math"
	"sort"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

// Statistics describes one sub-pattern over the trailing analysis window.
// Ephemeral: recomputed on every evaluation, never persisted.
type Statistics struct {
	SubPattern         SubPattern `json:"sub_pattern"`
	MedianMinutes      int        `json:"median_minutes"`
	StdDevMinutes      float64    `json:"std_dev_minutes"`
	Count              int        `json:"count"`
	GracePeriodMinutes int        `json:"grace_period_minutes"`
	Confidence         float64    `json:"confidence"`
}

// ConfidenceLabel maps the score to the badge consumers display. The
// thresholds are a display convention, not engine-enforced gates.
func (s *Statistics) ConfidenceLabel() string {
	return ConfidenceLabel(s.Confidence)
}

func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= constants.HighConfidenceBadge:
		return "high"
	case confidence >= constants.MediumConfidenceBadge:
		return "medium"
	default:
		return "low"
	}
}

// HighlyPredictable reports whether timing variance is low enough to call
// the pattern highly predictable.
func (s *Statistics) HighlyPredictable() bool {
	return s.StdDevMinutes < constants.PredictableStdDevMin
}

// Analyze computes statistics for one sub-pattern over the trailing 14 days
// of events. A nil result means insufficient evidence (fewer than 3
// qualifying events), not an error; the floor is deliberately low so
// suggestions can start early. Pure: same events and now, same result.
func Analyze(events []models.ActivityEvent, sub SubPattern, now time.Time, cfg Config) *Statistics {
	minutes := QualifyingMinutes(events, sub, now, cfg)
	if len(minutes) < constants.MinPatternEvents {
		return nil
	}

	med := median(minutes)
	std := stdDev(minutes)

	return &Statistics{
		SubPattern:         sub,
		MedianMinutes:      int(math.Round(med)),
		StdDevMinutes:      std,
		Count:              len(minutes),
		GracePeriodMinutes: sub.GracePeriodMinutes(),
		Confidence:         confidence(std, len(minutes)),
	}
}

// QualifyingMinutes extracts the minutes-of-day values of the events that
// qualify for a sub-pattern within the trailing analysis window. Events with
// malformed time strings are excluded, never coerced to a default time.
func QualifyingMinutes(events []models.ActivityEvent, sub SubPattern, now time.Time, cfg Config) []float64 {
	cutoff := timeutil.DateKey(now.In(cfg.Location).AddDate(0, 0, -(constants.PatternWindowDays - 1)))
	today := timeutil.DateKey(now.In(cfg.Location))

	if sub == SubFirstDaytimeNap {
		return firstNapMinutes(events, cutoff, today, cfg)
	}

	var minutes []float64
	for _, e := range events {
		day, m, ok := QualifyingValue(e, sub, cfg)
		if !ok || day < cutoff || day > today {
			continue
		}
		minutes = append(minutes, m)
	}
	return minutes
}

// QualifyingValue reports whether a single event qualifies for a sub-pattern
// and, if so, the calendar day it belongs to and its minutes-of-day value.
// firstDaytimeNap additionally requires being the earliest nap of its day,
// which only QualifyingMinutes can decide.
func QualifyingValue(e models.ActivityEvent, sub SubPattern, cfg Config) (day string, minutes float64, ok bool) {
	switch sub {
	case SubBedtime:
		// Only settled nights count: the start hour must be in the night
		// window and the caregiver must have recorded an end.
		if !timeutil.IsNightSleep(e, cfg.Location, cfg.NightStartHour, cfg.NightEndHour) || e.EndTime == "" {
			return "", 0, false
		}
		startMin, valid := timeutil.EventStartMinutes(e, cfg.Location)
		if !valid {
			return "", 0, false
		}
		return timeutil.EventDateKey(e, cfg.Location), normalizeNightStart(startMin, cfg), true

	case SubMorningWake:
		if !timeutil.IsNightSleep(e, cfg.Location, cfg.NightStartHour, cfg.NightEndHour) {
			return "", 0, false
		}
		endMin, valid := timeutil.EventEndMinutes(e)
		if !valid {
			return "", 0, false
		}
		wakeDay, valid := timeutil.WakeDateKey(e, cfg.Location)
		if !valid {
			return "", 0, false
		}
		return wakeDay, float64(endMin), true

	case SubFeed:
		if e.Kind != models.KindFeed {
			return "", 0, false
		}
		startMin, valid := timeutil.EventStartMinutes(e, cfg.Location)
		if !valid {
			return "", 0, false
		}
		return timeutil.EventDateKey(e, cfg.Location), float64(startMin), true

	case SubFirstDaytimeNap:
		if !timeutil.IsDaytimeNap(e, cfg.Location, cfg.NightStartHour, cfg.NightEndHour) {
			return "", 0, false
		}
		startMin, valid := timeutil.EventStartMinutes(e, cfg.Location)
		if !valid {
			return "", 0, false
		}
		return timeutil.EventDateKey(e, cfg.Location), float64(startMin), true
	}
	return "", 0, false
}

// firstNapMinutes keeps only the minute-earliest daytime nap per calendar day.
func firstNapMinutes(events []models.ActivityEvent, cutoff, today string, cfg Config) []float64 {
	earliest := make(map[string]float64)
	for _, e := range events {
		day, m, ok := QualifyingValue(e, SubFirstDaytimeNap, cfg)
		if !ok || day < cutoff || day > today {
			continue
		}
		if cur, seen := earliest[day]; !seen || m < cur {
			earliest[day] = m
		}
	}
	minutes := make([]float64, 0, len(earliest))
	for _, m := range earliest {
		minutes = append(minutes, m)
	}
	sort.Float64s(minutes)
	return minutes
}

// normalizeNightStart folds a bedtime that started after midnight (but still
// inside the night window) onto the previous evening's scale, so a 11:50 PM
// night and a 12:10 AM night sit 20 minutes apart instead of nearly a day.
func normalizeNightStart(startMin int, cfg Config) float64 {
	if startMin/60 < cfg.NightEndHour {
		return float64(startMin + constants.MinutesPerDay)
	}
	return float64(startMin)
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdDev is the population standard deviation. A single sample degenerates
// to 0, not NaN.
func stdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vals)))
}

// confidence combines timing consistency, evidence volume, and recency
// multiplicatively. The product is intentionally punitive: low evidence OR
// high variance suppresses the score on its own; a single very consistent
// data point must not produce a high-confidence suggestion.
func confidence(std float64, count int) float64 {
	consistency := math.Max(0, 1-std/constants.ConsistencyStdDevMin)
	completeness := math.Min(1, float64(count)/constants.CompletenessTarget)
	recency := math.Min(1, float64(count)/constants.RecencyTarget) * constants.RecencyBoost
	score := consistency * completeness * recency
	if score > 1 {
		return 1
	}
	return score
}
