package constants

import "time"

const (
	// Analysis window constants
	PatternWindowDays = 14 // trailing window the analyzer looks at
	MinPatternEvents  = 3  // evidence floor; below this no pattern exists

	// Grace periods: minutes past the learned median before a missed-activity
	// suggestion may surface.
	DefaultGracePeriodMin         = 45
	BedtimeGracePeriodMin         = 90 // put-down times vary a lot night to night
	FirstDaytimeNapGracePeriodMin = 60

	// Confidence formula constants. These were tuned empirically; the exact
	// values carry no derivation beyond "works acceptably in practice", so
	// keep them as-is rather than re-deriving.
	ConsistencyStdDevMin = 45.0 // stddev (minutes) at which consistency bottoms out
	CompletenessTarget   = 7.0  // occurrences for full completeness credit
	RecencyTarget        = 10.0 // occurrences for full recency credit
	RecencyBoost         = 1.2
	PredictableStdDevMin = 30.0 // below this a pattern counts as highly predictable

	// Confidence bars for surfacing a suggestion. Bedtime gets a lower bar:
	// its data is inherently noisier but high-value to flag.
	BedtimeRequiredConfidence = 0.55
	DefaultRequiredConfidence = 0.7

	// Badge thresholds consumers use to label confidence
	HighConfidenceBadge   = 0.75
	MediumConfidenceBadge = 0.5

	// Morning-wake evaluation constants
	MorningWakeOverdueMin    = 60 // minutes past median wake before nudging
	OpenSleepExclusionWindow = 2 * time.Hour

	// AcceptedFlagTTL silences re-surfacing after acceptance long enough to
	// absorb UI refresh races.
	AcceptedFlagTTL = 2 * time.Minute

	// SuggestTickInterval is how often the watch loop re-evaluates.
	SuggestTickInterval = 60 * time.Second

	// Transition detection constants
	TransitionMinDays      = 5
	TransitionMinDrop      = 1.0 // mean nap-count drop required to call a transition
	TransitionVarianceBar  = 0.5 // 5-day variance above this means the routine is shifting
	RecentNapAverageDays   = 3
	NapVarianceDays        = 5
	TransitionLookbackDays = 7 // window a transition claim is validated against
)

func init() {
	// Runtime validation: a suggestion that clears the badge bar must also
	// clear the medium bar, and bedtime's bar must stay below the default.
	if HighConfidenceBadge <= MediumConfidenceBadge {
		panic("HighConfidenceBadge must exceed MediumConfidenceBadge")
	}
	if BedtimeRequiredConfidence >= DefaultRequiredConfidence {
		panic("BedtimeRequiredConfidence must be below DefaultRequiredConfidence")
	}
}
