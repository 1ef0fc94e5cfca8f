// Package baseline holds static age-indexed reference data used as a fallback
// prior when observed data is thin. Rows are never mutated at runtime.
package baseline

import (
	"fmt"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
)

// Row is one age band of expected care-routine values.
type Row struct {
	MinAgeWeeks       int
	MaxAgeWeeks       int // inclusive
	NapCount          int // typical daytime naps per day
	NapCountMin       int
	NapCountMax       int
	FeedCount         int // typical feeds per day
	WakeWindowMinutes int // typical stretch of awake time between sleeps
}

// TransitionWindow describes an age band during which babies commonly drop
// from one stable nap count to another.
type TransitionWindow struct {
	FromNaps    int
	ToNaps      int
	MinAgeWeeks int
	MaxAgeWeeks int
}

var rows = []Row{
	{MinAgeWeeks: 0, MaxAgeWeeks: 5, NapCount: 5, NapCountMin: 4, NapCountMax: 6, FeedCount: 10, WakeWindowMinutes: 45},
	{MinAgeWeeks: 6, MaxAgeWeeks: 12, NapCount: 4, NapCountMin: 4, NapCountMax: 5, FeedCount: 8, WakeWindowMinutes: 60},
	{MinAgeWeeks: 13, MaxAgeWeeks: 17, NapCount: 4, NapCountMin: 3, NapCountMax: 4, FeedCount: 7, WakeWindowMinutes: 90},
	{MinAgeWeeks: 18, MaxAgeWeeks: 25, NapCount: 3, NapCountMin: 3, NapCountMax: 4, FeedCount: 6, WakeWindowMinutes: 120},
	{MinAgeWeeks: 26, MaxAgeWeeks: 34, NapCount: 3, NapCountMin: 2, NapCountMax: 3, FeedCount: 5, WakeWindowMinutes: 150},
	{MinAgeWeeks: 35, MaxAgeWeeks: 52, NapCount: 2, NapCountMin: 2, NapCountMax: 3, FeedCount: 5, WakeWindowMinutes: 180},
	{MinAgeWeeks: 53, MaxAgeWeeks: 77, NapCount: 2, NapCountMin: 1, NapCountMax: 2, FeedCount: 4, WakeWindowMinutes: 240},
	{MinAgeWeeks: 78, MaxAgeWeeks: 156, NapCount: 1, NapCountMin: 1, NapCountMax: 1, FeedCount: 4, WakeWindowMinutes: 300},
}

var transitions = []TransitionWindow{
	{FromNaps: 4, ToNaps: 3, MinAgeWeeks: 16, MaxAgeWeeks: 26},
	{FromNaps: 3, ToNaps: 2, MinAgeWeeks: 26, MaxAgeWeeks: 39},
	{FromNaps: 2, ToNaps: 1, MinAgeWeeks: 56, MaxAgeWeeks: 78},
}

// Lookup returns the reference row for an age in weeks. Ages past the last
// band clamp to it; negative ages have no row.
func Lookup(ageWeeks int) (Row, bool) {
	if ageWeeks < 0 {
		return Row{}, false
	}
	for _, r := range rows {
		if ageWeeks >= r.MinAgeWeeks && ageWeeks <= r.MaxAgeWeeks {
			return r, true
		}
	}
	return rows[len(rows)-1], true
}

// TransitionFor returns the transition window a given age falls inside, if
// any. The predictor uses it to phrase downward-transition notes.
func TransitionFor(ageWeeks int) (TransitionWindow, bool) {
	for _, tw := range transitions {
		if ageWeeks >= tw.MinAgeWeeks && ageWeeks <= tw.MaxAgeWeeks {
			return tw, true
		}
	}
	return TransitionWindow{}, false
}

// AgeWeeks derives the age in whole weeks from a YYYY-MM-DD birthdate.
func AgeWeeks(birthdate string, now time.Time) (int, error) {
	born, err := time.ParseInLocation(constants.DateFormat, birthdate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid birthdate %q: %w", birthdate, err)
	}
	if born.After(now) {
		return 0, fmt.Errorf("birthdate %q is in the future", birthdate)
	}
	return int(now.Sub(born).Hours() / 24 / 7), nil
}
