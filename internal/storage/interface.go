package storage

import (
	"net/url"
	"strings"
	"time"

	"github.com/juliexu77/babyrhythm/internal/models"
)

// Provider is the persistence surface for events, settings, and the
// suggestion dismissal/acceptance flags. The inference engine itself never
// touches a Provider; callers load events and hand them in.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Events
	AddEvent(models.ActivityEvent) error
	GetEvent(id string) (models.ActivityEvent, error)
	// GetEventsSince returns a household's events logged at or after the
	// given instant, oldest first.
	GetEventsSince(household string, since time.Time) ([]models.ActivityEvent, error)
	GetAllEvents(household string) ([]models.ActivityEvent, error)
	DeleteEvent(id string) error

	// Flags: the externally-owned key-value surface the suggester reads.
	// A zero TTL stores the flag without expiry.
	GetFlag(key string) (string, bool, error)
	PutFlag(key, value string, ttl time.Duration) error
	DeleteFlag(key string) error

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether a config value selects the postgres
// backend.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a postgres connection string embeds
// a password. Embedded credentials are refused; passwords belong in the OS
// keyring or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
