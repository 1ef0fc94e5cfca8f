package suggester

import (
	"fmt"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

// Flag keys are owned by the caller's store, not the engine. Dismissals are
// keyed per calendar day (one dismissal silences the sub-pattern for the
// rest of that day); acceptances are keyed per minute bucket and expire
// quickly, just long enough to absorb UI refresh races.

func dismissedKey(household string, sub pattern.SubPattern, day string) string {
	return fmt.Sprintf("dismissed:%s:%s:%s:%s", household, sub.Kind(), sub, day)
}

func acceptedKey(household string, sub pattern.SubPattern, bucket int64) string {
	return fmt.Sprintf("accepted:%s:%s:%s:%d", household, sub.Kind(), sub, bucket)
}

func minuteBucket(now time.Time) int64 {
	return now.Unix() / 60
}

// Dismiss records that the caregiver waved off today's suggestion for a
// sub-pattern. The flag is day-keyed, so it self-scopes; the TTL only keeps
// the store from accumulating stale keys.
func (ev *Evaluator) Dismiss(sub pattern.SubPattern, now time.Time) error {
	day := timeutil.DateKey(now.In(ev.cfg.Location))
	return ev.flags.PutFlag(dismissedKey(ev.household, sub, day), "1", 48*time.Hour)
}

// Accept records that the caregiver acted on a suggestion. Re-surfacing is
// silenced for the flag's short lifetime.
func (ev *Evaluator) Accept(sub pattern.SubPattern, now time.Time) error {
	return ev.flags.PutFlag(acceptedKey(ev.household, sub, minuteBucket(now)), "1", constants.AcceptedFlagTTL)
}

func (ev *Evaluator) isDismissed(sub pattern.SubPattern, local time.Time) (bool, error) {
	day := timeutil.DateKey(local)
	_, ok, err := ev.flags.GetFlag(dismissedKey(ev.household, sub, day))
	return ok, err
}

// isRecentlyAccepted checks the current and previous minute buckets; the
// flag's TTL bounds the lookback, the bucket pair covers the boundary where
// acceptance and re-evaluation straddle a minute edge.
func (ev *Evaluator) isRecentlyAccepted(sub pattern.SubPattern, now time.Time) (bool, error) {
	bucket := minuteBucket(now)
	for _, b := range []int64{bucket, bucket - 1} {
		_, ok, err := ev.flags.GetFlag(acceptedKey(ev.household, sub, b))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
