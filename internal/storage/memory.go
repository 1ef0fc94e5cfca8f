package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
)

// MemoryStore is an in-memory Provider used by tests and throwaway runs.
type MemoryStore struct {
	mu       sync.RWMutex
	settings *models.Settings
	events   map[string]models.ActivityEvent
	flags    map[string]memoryFlag
}

type memoryFlag struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[string]models.ActivityEvent),
		flags:  make(map[string]memoryFlag),
	}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		s.settings = &models.Settings{
			NightStartHour:       constants.DefaultNightStartHour,
			NightEndHour:         constants.DefaultNightEndHour,
			Timezone:             constants.DefaultTimezone,
			Household:            constants.DefaultHousehold,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		}
	}
	return nil
}

func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }

func (s *MemoryStore) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return *s.settings, nil
}

func (s *MemoryStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *MemoryStore) AddEvent(e models.ActivityEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[e.ID]; exists {
		return fmt.Errorf("event %s already exists", e.ID)
	}
	s.events[e.ID] = e
	return nil
}

func (s *MemoryStore) GetEvent(id string) (models.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return models.ActivityEvent{}, fmt.Errorf("event not found")
	}
	return e, nil
}

func (s *MemoryStore) GetEventsSince(household string, since time.Time) ([]models.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []models.ActivityEvent
	for _, e := range s.events {
		if e.Household == household && !e.LoggedAt.Before(since) {
			events = append(events, e)
		}
	}
	sortEvents(events)
	return events, nil
}

func (s *MemoryStore) GetAllEvents(household string) ([]models.ActivityEvent, error) {
	return s.GetEventsSince(household, time.Time{})
}

func (s *MemoryStore) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event not found")
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryStore) GetFlag(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flags[key]
	if !ok {
		return "", false, nil
	}
	if !f.expiresAt.IsZero() && time.Now().After(f.expiresAt) {
		delete(s.flags, key)
		return "", false, nil
	}
	return f.value, true, nil
}

func (s *MemoryStore) PutFlag(key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := memoryFlag{value: value}
	if ttl > 0 {
		f.expiresAt = time.Now().Add(ttl)
	}
	s.flags[key] = f
	return nil
}

func (s *MemoryStore) DeleteFlag(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, key)
	return nil
}

func sortEvents(events []models.ActivityEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].LoggedAt.Before(events[j].LoggedAt)
	})
}
