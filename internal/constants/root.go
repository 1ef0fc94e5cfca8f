package constants

const (
	AppName            = "babyrhythm"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/babyrhythm/babyrhythm.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the 12-hour clock format caregivers log times in (e.g. "7:30 PM")
	ClockFormat = "3:04 PM"

	// TimeFormat is the 24-hour clock format used for display (HH:MM)
	TimeFormat = "15:04"

	// MinutesPerDay is the number of minutes in a calendar day
	MinutesPerDay = 24 * 60

	// DefaultHousehold is the household id used when none is configured
	DefaultHousehold = "default"
)
