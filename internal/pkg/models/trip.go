package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusActive     TripStatus = "active"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusFinished   TripStatus = "finished"
	TripStatusCancelled  TripStatus = "cancelled"
)

// IsOpen reports whether the status counts toward the one-trip-per-user rule.
func (s TripStatus) IsOpen() bool {
	return s == TripStatusActive || s == TripStatusInProgress
}

// Role identifies which side of a match a trip belongs to
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// TripDetails holds the structured fields produced by extraction. Nil when
// extraction failed or was skipped; the trip is still valid without it.
type TripDetails map[string]string

// Value implements driver.Valuer so details can be stored as JSONB.
func (d TripDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *TripDetails) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported trip details type %T", src)
	}
	return json.Unmarshal(raw, d)
}

// Trip represents an offered route (driver) or a travel request (passenger).
// Trips are never deleted, only moved to a terminal status.
type Trip struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	OwnerID        int64       `json:"owner_id" db:"owner_id"`
	Role           Role        `json:"role" db:"role"`
	Latitude       float64     `json:"latitude" db:"latitude"`
	Longitude      float64     `json:"longitude" db:"longitude"`
	Geohash        string      `json:"geohash" db:"geohash"`
	DepartureAt    *time.Time  `json:"departure_at,omitempty" db:"departure_at"`
	DeadlineAt     *time.Time  `json:"deadline_at,omitempty" db:"deadline_at"`
	RawDescription string      `json:"raw_description" db:"raw_description"`
	Details        TripDetails `json:"details,omitempty" db:"details"`
	Status         TripStatus  `json:"status" db:"status"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// MatchCandidate is a driver trip returned by the matching engine together
// with its distance from the requesting passenger.
type MatchCandidate struct {
	Trip      *Trip   `json:"trip"`
	DistanceM float64 `json:"distance_m"`
}

// MatchFoundEvent is published when a passenger request produces candidates.
type MatchFoundEvent struct {
	PassengerID int64     `json:"passenger_id"`
	TripIDs     []string  `json:"trip_ids"`
	Radius      float64   `json:"radius_m"`
	CreatedAt   time.Time `json:"created_at"`
}

// TripEvent is published on trip lifecycle transitions.
type TripEvent struct {
	TripID    string     `json:"trip_id"`
	OwnerID   int64      `json:"owner_id"`
	Role      Role       `json:"role"`
	Status    TripStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
