package pattern

import (
	"reflect"
	"testing"

	"github.com/juliexu77/babyrhythm/internal/models"
)

func TestDailyDaytimeNapCounts(t *testing.T) {
	events := []models.ActivityEvent{
		daytimeNap(1, "9:30 AM"),
		daytimeNap(1, "1:30 PM"),
		daytimeNap(2, "10:00 AM"),
		// Day 3: a feed but no naps; counts as a logged zero-nap day.
		feedAt(3, "11:00 AM"),
		// Day 4: nothing logged at all; must be skipped, not zero.
		daytimeNap(5, "9:00 AM"),
		// Night sleeps never count as daytime naps.
		nightSleep(5, "7:30 PM", "6:45 AM"),
	}

	got := DailyDaytimeNapCounts(events, 6, testNow, testCfg)
	// Oldest first: day 5 (1 nap), day 3 (0), day 2 (1), day 1 (2), today (0
	// but unlogged, skipped). Day 4 is absent entirely.
	want := []int{1, 0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DailyDaytimeNapCounts() = %v, want %v", got, want)
	}
}

func TestDailyDaytimeNapCountsEmpty(t *testing.T) {
	if got := DailyDaytimeNapCounts(nil, 5, testNow, testCfg); len(got) != 0 {
		t.Errorf("DailyDaytimeNapCounts(nil) = %v, want empty", got)
	}
}
