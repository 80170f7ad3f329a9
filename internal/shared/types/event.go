package types

import "time"

// EventKind discriminates outbound notifications
type EventKind string

const (
	EventProfileChanged  EventKind = "profile_changed"
	EventProfileDeleted  EventKind = "profile_deleted"
	EventTabUpdated      EventKind = "tab_updated"
	EventRotationWarning EventKind = "rotation_warning"
)

// Event is a fire-and-forget notification for the host. Profile and Tab
// are snapshots, never live references.
type Event struct {
	Type      EventKind `json:"type"`
	Profile   *Profile  `json:"profile,omitempty"`
	Tab       *Tab      `json:"tab,omitempty"`
	ProfileID string    `json:"profile_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// NewEvent stamps an event with the current time.
func NewEvent(kind EventKind) Event {
	return Event{Type: kind, Timestamp: time.Now().UnixMilli()}
}
