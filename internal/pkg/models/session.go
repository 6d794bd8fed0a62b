package models

import "time"

// SessionState identifies where a conversation currently is
type SessionState string

const (
	StateIdle             SessionState = "idle"
	StateAwaitingLocation SessionState = "awaiting_location"
	StateCollectingField  SessionState = "collecting_field"
	StateAwaitingKYC      SessionState = "awaiting_kyc"
)

// CollectedField is one answer gathered during a conversation, in order.
type CollectedField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Session is the per-user conversation state. It is ephemeral: it lives in the
// session store only for the duration of one interactive flow and is cleared on
// completion, cancellation or reset. A process restart drops in-flight
// conversations by design.
type Session struct {
	UserID      int64            `json:"user_id"`
	DisplayName string           `json:"display_name"`
	State       SessionState     `json:"state"`
	Role        Role             `json:"role"`
	FieldIndex  int              `json:"field_index"`
	Fields      []CollectedField `json:"fields"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	StartedAt   time.Time        `json:"started_at"`
}

// Field returns the collected value for key, or "" when absent.
func (s *Session) Field(key string) string {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// PutField appends or replaces a collected field, preserving order.
func (s *Session) PutField(key, value string) {
	for i, f := range s.Fields {
		if f.Key == key {
			s.Fields[i].Value = value
			return
		}
	}
	s.Fields = append(s.Fields, CollectedField{Key: key, Value: value})
}
