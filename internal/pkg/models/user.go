package models

import "time"

// UserProfile represents a bot user. Profiles are upserted on first contact;
// Verified only ever moves from false to true.
type UserProfile struct {
	UserID         int64     `json:"user_id" db:"user_id"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	CompletedTrips int       `json:"completed_trips" db:"completed_trips"`
	Verified       bool      `json:"verified" db:"verified"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Location represents a geographical point shared by a user
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
