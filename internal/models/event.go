package models

import (
	"fmt"
	"time"
)

// ActivityKind is the kind of care event being logged
type ActivityKind string

const (
	KindFeed   ActivityKind = "feed"
	KindNap    ActivityKind = "nap"
	KindDiaper ActivityKind = "diaper"
	KindNote   ActivityKind = "note"
)

// ValidKind reports whether k is one of the four supported activity kinds.
func ValidKind(k ActivityKind) bool {
	switch k {
	case KindFeed, KindNap, KindDiaper, KindNote:
		return true
	}
	return false
}

// ActivityEvent is one logged care occurrence. StartTime/EndTime are the
// caregiver-entered wall-clock strings ("7:30 PM"); when present they are
// authoritative over LoggedAt, which only records when the entry was made.
// An EndTime earlier in the day than StartTime is a valid span that wraps
// past midnight, not an error.
type ActivityEvent struct {
	ID         string            `json:"id"`
	Household  string            `json:"household"`
	Kind       ActivityKind      `json:"kind"`
	LoggedAt   time.Time         `json:"logged_at"`
	StartTime  string            `json:"start_time,omitempty"` // 12-hour clock, e.g. "7:30 PM"
	EndTime    string            `json:"end_time,omitempty"`
	Duration   string            `json:"duration,omitempty"` // e.g. "1h 30m"
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attribute keys for kind-specific payloads
const (
	AttrFeedVolume = "volume"
	AttrFeedUnit   = "unit"
	AttrNoteText   = "text"
)

func (e *ActivityEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id cannot be empty")
	}
	if !ValidKind(e.Kind) {
		return fmt.Errorf("invalid activity kind: %q", e.Kind)
	}
	if e.LoggedAt.IsZero() {
		return fmt.Errorf("event logged_at cannot be zero")
	}
	return nil
}

// Attr returns the named attribute, or "" when absent.
func (e *ActivityEvent) Attr(key string) string {
	if e.Attributes == nil {
		return ""
	}
	return e.Attributes[key]
}

// HasSpan reports whether the caregiver recorded both endpoints of the event.
func (e *ActivityEvent) HasSpan() bool {
	return e.StartTime != "" && e.EndTime != ""
}
