package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
)

// ErrNoActiveTrip is returned by Terminate when the user has no open trip.
// It is a soft failure: callers report it, they do not treat it as fatal.
var ErrNoActiveTrip = errors.New("no active trip")

// EntryDecision is the outcome of the pre-flow gating check
type EntryDecision int

const (
	// EntryAllow permits starting a new trip flow
	EntryAllow EntryDecision = iota
	// EntryDenyActiveTrip blocks because an open trip already exists
	EntryDenyActiveTrip
	// EntryDenyUnverified blocks until the user passes the identity check
	EntryDenyUnverified
)

// ActivityGuard enforces the at-most-one-open-trip rule and the one-time
// identity check required after a user's first completed trip.
type ActivityGuard struct {
	trips    bot.TripRepository
	profiles bot.ProfileRepository
	events   bot.EventsGateway
	logger   *logger.ZapLogger
}

// NewActivityGuard creates a new activity guard
func NewActivityGuard(
	trips bot.TripRepository,
	profiles bot.ProfileRepository,
	events bot.EventsGateway,
	zapLogger *logger.ZapLogger,
) *ActivityGuard {
	return &ActivityGuard{
		trips:    trips,
		profiles: profiles,
		events:   events,
		logger:   zapLogger,
	}
}

// CheckEntry decides whether userID may start a new trip flow. An open trip
// always denies, regardless of verification; a brand-new user is always
// allowed; an unverified user is denied only after their first completed trip.
func (g *ActivityGuard) CheckEntry(ctx context.Context, userID int64) (EntryDecision, error) {
	_, err := g.trips.GetOpenTripByOwner(ctx, userID)
	if err == nil {
		return EntryDenyActiveTrip, nil
	}
	if !errors.Is(err, bot.ErrTripNotFound) {
		return EntryAllow, fmt.Errorf("failed to check open trip: %w", err)
	}

	profile, err := g.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, bot.ErrProfileNotFound) {
			return EntryAllow, nil
		}
		return EntryAllow, fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.CompletedTrips >= 1 && !profile.Verified {
		return EntryDenyUnverified, nil
	}

	return EntryAllow, nil
}

// Terminate moves the user's open trip to a terminal status. Finishing a trip
// also increments the owner's completed trip count. Returns ErrNoActiveTrip
// when there is nothing to terminate.
func (g *ActivityGuard) Terminate(ctx context.Context, userID int64, outcome models.TripStatus) (*models.Trip, error) {
	if outcome.IsOpen() {
		return nil, fmt.Errorf("invalid terminal status %q", outcome)
	}

	trip, err := g.trips.GetOpenTripByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, bot.ErrTripNotFound) {
			return nil, ErrNoActiveTrip
		}
		return nil, fmt.Errorf("failed to find open trip: %w", err)
	}

	if err := g.trips.UpdateTripStatus(ctx, trip.ID, outcome); err != nil {
		return nil, fmt.Errorf("failed to terminate trip: %w", err)
	}
	trip.Status = outcome

	if outcome == models.TripStatusFinished {
		if err := g.profiles.IncrementCompletedTrips(ctx, userID); err != nil {
			// The trip is already terminal; losing the counter update is
			// logged, not fatal.
			g.logger.Error("Failed to increment completed trips",
				logger.Int64("user_id", userID),
				logger.Err(err))
		}
	}

	event := models.TripEvent{
		TripID:    trip.ID.String(),
		OwnerID:   trip.OwnerID,
		Role:      trip.Role,
		Status:    outcome,
		CreatedAt: time.Now(),
	}
	if err := g.events.PublishTripEvent(ctx, event); err != nil {
		g.logger.Warn("Failed to publish trip event",
			logger.String("trip_id", event.TripID),
			logger.Err(err))
	}

	return trip, nil
}
