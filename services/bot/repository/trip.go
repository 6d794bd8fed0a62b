package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
)

// TripRepo implements bot.TripRepository on PostgreSQL
type TripRepo struct {
	db *sqlx.DB
}

// NewTripRepo creates a new trip repository
func NewTripRepo(db *sqlx.DB) *TripRepo {
	return &TripRepo{db: db}
}

// CreateTrip inserts a new trip record. The one-open-trip-per-owner rule is
// additionally enforced by a partial unique index on (owner_id) for
// non-terminal statuses, so a concurrent double insert fails here instead of
// corrupting the invariant.
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	query := `
		INSERT INTO trips (id, owner_id, role, latitude, longitude, geohash,
			departure_at, deadline_at, raw_description, details, status,
			created_at, updated_at
		) VALUES (:id, :owner_id, :role, :latitude, :longitude, :geohash,
			:departure_at, :deadline_at, :raw_description, :details, :status,
			:created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

// GetOpenTripByOwner returns the owner's active or in-progress trip, or
// bot.ErrTripNotFound when none exists.
func (r *TripRepo) GetOpenTripByOwner(ctx context.Context, ownerID int64) (*models.Trip, error) {
	query := `
		SELECT id, owner_id, role, latitude, longitude, geohash,
			departure_at, deadline_at, raw_description, details, status,
			created_at, updated_at
		FROM trips
		WHERE owner_id = $1 AND status IN ('active', 'in_progress')
	`

	var trip models.Trip
	err := r.db.GetContext(ctx, &trip, query, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bot.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get open trip: %w", err)
	}

	return &trip, nil
}

// UpdateTripStatus moves a trip to a new status
func (r *TripRepo) UpdateTripStatus(ctx context.Context, id uuid.UUID, status models.TripStatus) error {
	query := `UPDATE trips SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip status update: %w", err)
	}
	if rows == 0 {
		return bot.ErrTripNotFound
	}

	return nil
}

// UpdateTripDetails stores structured fields on an existing trip
func (r *TripRepo) UpdateTripDetails(ctx context.Context, id uuid.UUID, details models.TripDetails) error {
	query := `UPDATE trips SET details = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, details, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update trip details: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip details update: %w", err)
	}
	if rows == 0 {
		return bot.ErrTripNotFound
	}

	return nil
}

// ListActiveDriverTrips returns active driver trips, optionally restricted to
// the given geohash zones.
func (r *TripRepo) ListActiveDriverTrips(ctx context.Context, zones []string) ([]*models.Trip, error) {
	query := `
		SELECT id, owner_id, role, latitude, longitude, geohash,
			departure_at, deadline_at, raw_description, details, status,
			created_at, updated_at
		FROM trips
		WHERE role = 'driver' AND status = 'active'
	`

	var args []interface{}
	if len(zones) > 0 {
		var err error
		query, args, err = sqlx.In(query+" AND geohash IN (?)", zones)
		if err != nil {
			return nil, fmt.Errorf("failed to build zone filter: %w", err)
		}
		query = r.db.Rebind(query)
	}

	trips := []*models.Trip{}
	if err := r.db.SelectContext(ctx, &trips, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list active driver trips: %w", err)
	}

	return trips, nil
}
