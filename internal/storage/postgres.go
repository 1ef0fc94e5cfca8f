package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	household  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	logged_at  TIMESTAMPTZ NOT NULL,
	start_time TEXT NOT NULL DEFAULT '',
	end_time   TEXT NOT NULL DEFAULT '',
	duration   TEXT NOT NULL DEFAULT '',
	attributes JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_events_household_logged ON events(household, logged_at);
CREATE TABLE IF NOT EXISTS flags (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMPTZ
);
`

// PostgresStore backs a shared household: several caregivers logging against
// one authoritative store, which is what keeps dismissal flags
// read-after-write consistent across their devices.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *PostgresStore) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string { return s.connStr }

func (s *PostgresStore) GetSettings() (models.Settings, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", "settings").Scan(&raw)
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, "settings", string(raw))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddEvent(e models.ActivityEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	if e.Attributes == nil {
		attrs = []byte("{}")
	}
	_, err = s.db.Exec(`
		INSERT INTO events (id, household, kind, logged_at, start_time, end_time, duration, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Household, string(e.Kind), e.LoggedAt.UTC(), e.StartTime, e.EndTime, e.Duration, string(attrs))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetEvent(id string) (models.ActivityEvent, error) {
	row := s.db.QueryRow(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events WHERE id = $1
	`, id)
	e, err := scanPostgresEvent(row)
	if err == sql.ErrNoRows {
		return models.ActivityEvent{}, fmt.Errorf("event not found")
	}
	if err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) GetEventsSince(household string, since time.Time) ([]models.ActivityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events
		WHERE household = $1 AND logged_at >= $2
		ORDER BY logged_at
	`, household, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()
	return collectPostgresEvents(rows)
}

func (s *PostgresStore) GetAllEvents(household string) ([]models.ActivityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, household, kind, logged_at, start_time, end_time, duration, attributes
		FROM events
		WHERE household = $1
		ORDER BY logged_at
	`, household)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()
	return collectPostgresEvents(rows)
}

func (s *PostgresStore) DeleteEvent(id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

func (s *PostgresStore) GetFlag(key string) (string, bool, error) {
	var value string
	var expiresAt *time.Time
	err := s.db.QueryRow("SELECT value, expires_at FROM flags WHERE key = $1", key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get flag: %w", err)
	}
	if expiresAt != nil && time.Now().After(*expiresAt) {
		_ = s.DeleteFlag(key)
		return "", false, nil
	}
	return value, true, nil
}

func (s *PostgresStore) PutFlag(key, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl).UTC()
		expiresAt = &t
	}
	_, err := s.db.Exec(`
		INSERT INTO flags (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to put flag: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteFlag(key string) error {
	if _, err := s.db.Exec("DELETE FROM flags WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete flag: %w", err)
	}
	return nil
}

func scanPostgresEvent(row rowScanner) (models.ActivityEvent, error) {
	var e models.ActivityEvent
	var kind, attrs string
	if err := row.Scan(&e.ID, &e.Household, &kind, &e.LoggedAt, &e.StartTime, &e.EndTime, &e.Duration, &attrs); err != nil {
		return models.ActivityEvent{}, err
	}
	e.Kind = models.ActivityKind(kind)
	if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	return e, nil
}

func collectPostgresEvents(rows *sql.Rows) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent
	for rows.Next() {
		e, err := scanPostgresEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
