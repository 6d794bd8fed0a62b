package bot

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kyudan/motemovil/internal/pkg/models"
)

// ErrTripNotFound is returned when no trip matches a repository query
var ErrTripNotFound = errors.New("trip not found")

// ErrProfileNotFound is returned when no profile exists for a user
var ErrProfileNotFound = errors.New("profile not found")

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/kyudan/motemovil/services/bot TripRepository,ProfileRepository,SessionStore

// TripRepository persists trip records. Trips are never deleted; terminal
// statuses end their lifecycle.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetOpenTripByOwner(ctx context.Context, ownerID int64) (*models.Trip, error)
	UpdateTripStatus(ctx context.Context, id uuid.UUID, status models.TripStatus) error
	UpdateTripDetails(ctx context.Context, id uuid.UUID, details models.TripDetails) error

	// ListActiveDriverTrips returns active driver trips, optionally restricted
	// to the given geohash zones. A nil zones slice means no zone filter.
	ListActiveDriverTrips(ctx context.Context, zones []string) ([]*models.Trip, error)
}

// ProfileRepository persists user profiles
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, userID int64, displayName string) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	IncrementCompletedTrips(ctx context.Context, userID int64) error
	MarkVerified(ctx context.Context, userID int64) error
}

// SessionStore holds in-flight conversation sessions. Implementations back it
// with process memory (single instance) or Redis (shared deployments).
type SessionStore interface {
	// Get returns the session for a user, or nil when none is in flight.
	Get(ctx context.Context, userID int64) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, userID int64) error
}
