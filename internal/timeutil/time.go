package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateKey formats t as the standard calendar-day key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseClockMinutes parses a caregiver-entered wall-clock string into minutes
// since local midnight. Both the 12-hour form ("7:30 PM") and the 24-hour
// form ("19:30") are accepted. An unparseable string is an error; callers
// treat that as "does not qualify", never as midnight.
func ParseClockMinutes(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty clock string")
	}
	if t, err := time.Parse(constants.ClockFormat, strings.ToUpper(trimmed)); err == nil {
		return t.Hour()*60 + t.Minute(), nil
	}
	if t, err := time.Parse(constants.TimeFormat, trimmed); err == nil {
		return t.Hour()*60 + t.Minute(), nil
	}
	return 0, fmt.Errorf("unparseable clock time %q", s)
}

var durationPattern = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?$`)

// ParseDurationMinutes parses duration strings of the form "1h 30m", "2h",
// or "45m" into minutes. Strings matching neither component are rejected
// rather than coerced to zero.
func ParseDurationMinutes(s string) (int, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if trimmed == "" {
		return 0, fmt.Errorf("empty duration string")
	}
	m := durationPattern.FindStringSubmatch(trimmed)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("unparseable duration %q", s)
	}
	minutes := 0
	if m[1] != "" {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("unparseable duration %q: %w", s, err)
		}
		minutes += hours * 60
	}
	if m[2] != "" {
		mins, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, fmt.Errorf("unparseable duration %q: %w", s, err)
		}
		minutes += mins
	}
	return minutes, nil
}

// FormatDurationMinutes renders a minute count in the same "1h 30m" form
// ParseDurationMinutes accepts.
func FormatDurationMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// FormatMinutes renders minutes-since-midnight as a 12-hour clock label
// ("7:30 PM") for user-facing messages. Values past a day wrap are folded
// back into [0,1440).
func FormatMinutes(minutes int) string {
	minutes = ((minutes % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format(constants.ClockFormat)
}

// EventStartMinutes derives the event's start clock time in minutes since
// local midnight. The caregiver-entered StartTime string wins; the local
// reinterpretation of LoggedAt is only a fallback for events logged without
// one. The boolean is false when no usable time exists.
func EventStartMinutes(e models.ActivityEvent, loc *time.Location) (int, bool) {
	if e.StartTime != "" {
		m, err := ParseClockMinutes(e.StartTime)
		if err != nil {
			return 0, false
		}
		return m, true
	}
	if e.LoggedAt.IsZero() {
		return 0, false
	}
	local := e.LoggedAt.In(loc)
	return local.Hour()*60 + local.Minute(), true
}

// EventEndMinutes derives the event's recorded end clock time. Unlike the
// start, there is no LoggedAt fallback: an event without an explicit EndTime
// has no end.
func EventEndMinutes(e models.ActivityEvent) (int, bool) {
	if e.EndTime == "" {
		return 0, false
	}
	m, err := ParseClockMinutes(e.EndTime)
	if err != nil {
		return 0, false
	}
	return m, true
}

// EventDateKey returns the calendar day an event belongs to for
// start-anchored sub-patterns (bedtime, feeds, naps): the day it was logged
// on, in the caregiver's timezone.
func EventDateKey(e models.ActivityEvent, loc *time.Location) string {
	return DateKey(e.LoggedAt.In(loc))
}

// WakeDateKey returns the calendar day an event belongs to for end-anchored
// sub-patterns (morning wake): when the recorded span wraps past midnight
// the end falls on the day after the start day. Returns false when the event
// has no usable span.
func WakeDateKey(e models.ActivityEvent, loc *time.Location) (string, bool) {
	startMin, ok := EventStartMinutes(e, loc)
	if !ok {
		return "", false
	}
	endMin, ok := EventEndMinutes(e)
	if !ok {
		return "", false
	}
	day := e.LoggedAt.In(loc)
	if endMin < startMin {
		day = day.AddDate(0, 0, 1)
	}
	return DateKey(day), true
}

// SpanMinutes computes the duration between two minutes-of-day values,
// attributing a negative nominal difference to a span that crossed midnight.
func SpanMinutes(startMin, endMin int) int {
	d := endMin - startMin
	if d < 0 {
		d += constants.MinutesPerDay
	}
	return d
}

// ElapsedSince computes how many minutes "now" is past a reference
// minutes-of-day value, adjusted for the day wraparound (a 7:30 PM median
// checked at 12:10 AM has elapsed 280 minutes, not -1160).
func ElapsedSince(nowMin, refMin int) int {
	refMin = ((refMin % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
	return ((nowMin - refMin) + constants.MinutesPerDay) % constants.MinutesPerDay
}

// SignedDelta folds the difference between two minutes-of-day values onto
// [-720, 720): how far "now" sits past the reference, where anything more
// than half a day away reads as "before" rather than "long after". This is
// the day-wraparound adjustment overdue checks need: a 11:50 PM median
// checked at 12:30 AM is 40 minutes overdue, while 5:00 PM against a
// 7:30 PM median is 150 minutes early, not 21.5 hours late.
func SignedDelta(nowMin, refMin int) int {
	d := ((nowMin-refMin)%constants.MinutesPerDay + constants.MinutesPerDay) % constants.MinutesPerDay
	if d >= constants.MinutesPerDay/2 {
		d -= constants.MinutesPerDay
	}
	return d
}

// InNightWindow reports whether a start hour falls inside the configured
// night window. The window wraps midnight when startHour > endHour
// (the default 19–7 does).
func InNightWindow(hour, nightStartHour, nightEndHour int) bool {
	if nightStartHour > nightEndHour {
		return hour >= nightStartHour || hour < nightEndHour
	}
	return hour >= nightStartHour && hour < nightEndHour
}

// IsNightSleep reports whether a nap event started inside the night window
// and therefore counts as night sleep rather than a daytime nap.
func IsNightSleep(e models.ActivityEvent, loc *time.Location, nightStartHour, nightEndHour int) bool {
	if e.Kind != models.KindNap {
		return false
	}
	startMin, ok := EventStartMinutes(e, loc)
	if !ok {
		return false
	}
	return InNightWindow(startMin/60, nightStartHour, nightEndHour)
}

// IsDaytimeNap reports whether a nap event started outside the night window.
func IsDaytimeNap(e models.ActivityEvent, loc *time.Location, nightStartHour, nightEndHour int) bool {
	if e.Kind != models.KindNap {
		return false
	}
	startMin, ok := EventStartMinutes(e, loc)
	if !ok {
		return false
	}
	return !InNightWindow(startMin/60, nightStartHour, nightEndHour)
}
