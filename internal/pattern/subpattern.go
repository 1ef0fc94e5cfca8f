package pattern

import (
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
)

// SubPattern names one habitual behavior derived from the activity history.
type SubPattern string

const (
	SubBedtime         SubPattern = "bedtime"
	SubMorningWake     SubPattern = "morningWake"
	SubFeed            SubPattern = "feed"
	SubFirstDaytimeNap SubPattern = "firstDaytimeNap"
)

// Priority is the fixed evaluation order across sub-patterns: the first one
// that yields a suggestion wins an evaluation tick.
var Priority = []SubPattern{SubBedtime, SubMorningWake, SubFeed, SubFirstDaytimeNap}

// All lists every sub-pattern in priority order, for stats display.
func All() []SubPattern {
	return Priority
}

// Parse resolves a user-entered sub-pattern name.
func Parse(name string) (SubPattern, bool) {
	for _, s := range Priority {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Kind returns the activity kind a sub-pattern is derived from.
func (s SubPattern) Kind() models.ActivityKind {
	if s == SubFeed {
		return models.KindFeed
	}
	return models.KindNap
}

// GracePeriodMinutes returns the minutes past the learned median before a
// missed-activity suggestion for this sub-pattern may surface.
func (s SubPattern) GracePeriodMinutes() int {
	switch s {
	case SubBedtime:
		return constants.BedtimeGracePeriodMin
	case SubFirstDaytimeNap:
		return constants.FirstDaytimeNapGracePeriodMin
	default:
		return constants.DefaultGracePeriodMin
	}
}

// RequiredConfidence returns the confidence bar a pattern must clear before
// this sub-pattern is allowed to nudge.
func (s SubPattern) RequiredConfidence() float64 {
	if s == SubBedtime {
		return constants.BedtimeRequiredConfidence
	}
	return constants.DefaultRequiredConfidence
}

// Label returns the human name used in suggestion messages.
func (s SubPattern) Label() string {
	switch s {
	case SubBedtime:
		return "bedtime"
	case SubMorningWake:
		return "morning wake-up"
	case SubFeed:
		return "feed"
	case SubFirstDaytimeNap:
		return "first nap"
	default:
		return string(s)
	}
}

// Config carries the caregiver-configurable inputs every analysis needs.
type Config struct {
	NightStartHour int
	NightEndHour   int
	Location       *time.Location
}

// ConfigFromSettings builds an analysis config from stored settings.
// The location must already be resolved by the caller.
func ConfigFromSettings(s models.Settings, loc *time.Location) Config {
	return Config{
		NightStartHour: s.NightStartHour,
		NightEndHour:   s.NightEndHour,
		Location:       loc,
	}
}
