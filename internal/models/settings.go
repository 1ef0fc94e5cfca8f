package models

// Settings represents application-wide settings
type Settings struct {
	NightStartHour       int    `json:"night_start_hour"`      // hour the night-sleep window opens, e.g. 19
	NightEndHour         int    `json:"night_end_hour"`        // hour the night-sleep window closes, e.g. 7
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	Birthdate            string `json:"birthdate,omitempty"`   // YYYY-MM-DD; drives the age-baseline lookup
	Household            string `json:"household"`             // household id suggestions and flags are keyed by
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether the watch loop sends desktop notifications
}
