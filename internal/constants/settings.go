package constants

const (
	// Default Settings Values
	DefaultNightStartHour       = 19 // 7:00 PM
	DefaultNightEndHour         = 7  // 7:00 AM
	DefaultTimezone             = "Local"
	DefaultNotificationsEnabled = true
)
