// Package transition decides whether the caregiver's routine is shifting
// between two stable daily nap counts, and validates transition claims made
// by external generators against the raw logged counts.
package transition

import (
	"fmt"
	"math"

	"github.com/juliexu77/babyrhythm/internal/constants"
)

// Info describes a detected nap-count transition.
type Info struct {
	FromNaps       int     `json:"from_naps"`
	ToNaps         int     `json:"to_naps"`
	FirstHalfMean  float64 `json:"first_half_mean"`
	SecondHalfMean float64 `json:"second_half_mean"`
}

// Detect compares nap-count means across the first and second halves of a
// per-day count series (oldest first). It returns nil unless the series
// covers at least 5 days and the drop is a full nap or more; single noisy
// days must not read as a transition.
func Detect(dailyNapCounts []int) *Info {
	if len(dailyNapCounts) < constants.TransitionMinDays {
		return nil
	}

	half := len(dailyNapCounts) / 2
	firstMean := mean(dailyNapCounts[:half])
	secondMean := mean(dailyNapCounts[half:])

	if firstMean-secondMean < constants.TransitionMinDrop {
		return nil
	}

	return &Info{
		FromNaps:       int(math.Round(firstMean)),
		ToNaps:         int(math.Round(secondMean)),
		FirstHalfMean:  firstMean,
		SecondHalfMean: secondMean,
	}
}

// ClaimResult is the outcome of validating an externally-generated
// transition claim.
type ClaimResult struct {
	Valid bool `json:"valid"`
	// Statement is a neutral replacement phrase when the claim was rejected:
	// a downgrade, not a silent discard.
	Statement string `json:"statement,omitempty"`
}

// ValidateClaim checks a "from N to M naps" claim from any external
// generator against the trailing week of per-day counts. The claim is
// rejected unless at least one day actually recorded N or more naps; a
// narrative generator must not be trusted to invent a "4 to 3" transition
// when no day ever had 4. On rejection the caller gets a stabilizing
// statement referencing the true observed range.
func ValidateClaim(fromNaps, toNaps int, recentDailyCounts []int) ClaimResult {
	if len(recentDailyCounts) == 0 {
		return ClaimResult{Valid: false, Statement: "not enough logged days to confirm a nap transition"}
	}

	counts := recentDailyCounts
	if len(counts) > constants.TransitionLookbackDays {
		counts = counts[len(counts)-constants.TransitionLookbackDays:]
	}

	lo, hi := counts[0], counts[0]
	supported := false
	for _, c := range counts {
		if c >= fromNaps {
			supported = true
		}
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}

	if supported {
		return ClaimResult{Valid: true}
	}
	return ClaimResult{
		Valid:     false,
		Statement: fmt.Sprintf("nap schedule is stabilizing between %d and %d naps per day", lo, hi),
	}
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}
