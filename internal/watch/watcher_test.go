package watch

import (
	"fmt"
	"testing"
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/storage"
)

func seededStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	// Seven settled nights ending yesterday: a confident bedtime habit at
	// 7:30 PM that is overdue by 9:00 PM.
	for d := 1; d <= 7; d++ {
		e := models.ActivityEvent{
			ID:        fmt.Sprintf("night-%d", d),
			Household: "default",
			Kind:      models.KindNap,
			LoggedAt:  time.Date(2026, 3, 10-d, 20, 0, 0, 0, time.UTC),
			StartTime: "7:30 PM",
			EndTime:   "6:45 AM",
		}
		if err := store.AddEvent(e); err != nil {
			t.Fatalf("AddEvent() error = %v", err)
		}
	}
	return store
}

func captureNotify(t *testing.T) *[]string {
	t.Helper()
	var sent []string
	orig := Notify
	Notify = func(title, message string) error {
		sent = append(sent, message)
		return nil
	}
	t.Cleanup(func() { Notify = orig })
	return &sent
}

func TestTickEvaluates(t *testing.T) {
	w := New(seededStore(t))

	sugg, err := w.Tick(time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if sugg == nil {
		t.Fatal("Tick() = nil, want the overdue bedtime suggestion")
	}
	if sugg.SubPattern != pattern.SubBedtime {
		t.Errorf("SubPattern = %s, want %s", sugg.SubPattern, pattern.SubBedtime)
	}
}

func TestTickNotifiesOncePerDay(t *testing.T) {
	sent := captureNotify(t)
	w := New(seededStore(t))
	now := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)

	w.tick(now)
	w.tick(now.Add(time.Minute))
	if len(*sent) != 1 {
		t.Fatalf("notifications sent = %d, want 1 (same suggestion, same day)", len(*sent))
	}
	if (*sent)[0] == "" {
		t.Error("notification message is empty")
	}

	// A new day resets the dedupe.
	w.tick(now.AddDate(0, 0, 1))
	if len(*sent) != 2 {
		t.Errorf("notifications sent = %d, want 2 after the day rolled over", len(*sent))
	}
}

func TestTickHonorsNotificationSetting(t *testing.T) {
	sent := captureNotify(t)
	store := seededStore(t)

	settings, _ := store.GetSettings()
	settings.NotificationsEnabled = false
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	w := New(store)
	now := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
	w.tick(now)
	if len(*sent) != 0 {
		t.Errorf("notifications sent = %d, want 0 when disabled", len(*sent))
	}

	// The evaluation itself still runs.
	sugg, err := w.Tick(now)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if sugg == nil {
		t.Error("Tick() = nil, want a suggestion even with notifications off")
	}
}
