package pattern

import (
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

// DailyDaytimeNapCounts returns per-day daytime nap counts for the trailing
// number of days, oldest first. Only days the caregiver logged anything at
// all contribute: a day with no entries is an unlogged day, not a zero-nap
// day, and must not drag the series down.
func DailyDaytimeNapCounts(events []models.ActivityEvent, days int, now time.Time, cfg Config) []int {
	naps := make(map[string]int)
	logged := make(map[string]bool)

	for _, e := range events {
		day := timeutil.EventDateKey(e, cfg.Location)
		logged[day] = true
		if timeutil.IsDaytimeNap(e, cfg.Location, cfg.NightStartHour, cfg.NightEndHour) {
			naps[day]++
		}
	}

	local := now.In(cfg.Location)
	var counts []int
	for i := days - 1; i >= 0; i-- {
		day := timeutil.DateKey(local.AddDate(0, 0, -i))
		if !logged[day] {
			continue
		}
		counts = append(counts, naps[day])
	}
	return counts
}
