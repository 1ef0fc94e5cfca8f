package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	household  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	logged_at  TEXT NOT NULL,
	start_time TEXT NOT NULL DEFAULT '',
	end_time   TEXT NOT NULL DEFAULT '',
	duration   TEXT NOT NULL DEFAULT '',
	attributes TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_events_household_logged ON events(household, logged_at);
CREATE TABLE IF NOT EXISTS flags (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TEXT
);
`

// SQLiteStore is the default local backend, a single file under the user's
// config directory.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: expandHome(path)}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings on first init
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			NightStartHour:       constants.DefaultNightStartHour,
			NightEndHour:         constants.DefaultNightEndHour,
			Timezone:             constants.DefaultTimezone,
			Household:            constants.DefaultHousehold,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'babyrhythm init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string { return s.path }

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", "settings").Scan(&raw)
	if err == sql.ErrNoRows {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	var settings models.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, "settings", string(raw))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddEvent(e models.ActivityEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO events (id, household, kind, logged_at, start_time, end_time, duration, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Household, string(e.Kind), e.LoggedAt.UTC().Format(time.RFC3339), e.StartTime, e.EndTime, e.Duration, string(attrs))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEvent(id string) (models.ActivityEvent, error) {
	row := s.db.QueryRow(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events WHERE id = ?
	`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return models.ActivityEvent{}, fmt.Errorf("event not found")
	}
	if err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) GetEventsSince(household string, since time.Time) ([]models.ActivityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events
		WHERE household = ? AND logged_at >= ?
		ORDER BY logged_at
	`, household, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *SQLiteStore) GetAllEvents(household string) ([]models.ActivityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events
		WHERE household = ?
		ORDER BY logged_at
	`, household)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

func (s *SQLiteStore) GetFlag(key string) (string, bool, error) {
	var value string
	var expiresAt *string
	err := s.db.QueryRow("SELECT value, expires_at FROM flags WHERE key = ?", key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get flag: %w", err)
	}
	if flagExpired(expiresAt) {
		_ = s.DeleteFlag(key)
		return "", false, nil
	}
	return value, true, nil
}

func (s *SQLiteStore) PutFlag(key, value string, ttl time.Duration) error {
	var expiresAt *string
	if ttl > 0 {
		str := time.Now().Add(ttl).UTC().Format(time.RFC3339)
		expiresAt = &str
	}
	_, err := s.db.Exec(`
		INSERT INTO flags (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to put flag: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteFlag(key string) error {
	if _, err := s.db.Exec("DELETE FROM flags WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete flag: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.ActivityEvent, error) {
	var e models.ActivityEvent
	var kind, loggedAt, attrs string
	if err := row.Scan(&e.ID, &e.Household, &kind, &loggedAt, &e.StartTime, &e.EndTime, &e.Duration, &attrs); err != nil {
		return models.ActivityEvent{}, err
	}
	e.Kind = models.ActivityKind(kind)
	t, err := time.Parse(time.RFC3339, loggedAt)
	if err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to parse logged_at: %w", err)
	}
	e.LoggedAt = t
	if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func flagExpired(expiresAt *string) bool {
	if expiresAt == nil || *expiresAt == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, *expiresAt)
	if err != nil {
		return true
	}
	return time.Now().After(t)
}
