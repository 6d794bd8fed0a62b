package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/services/bot"
)

// ProfileRepo implements bot.ProfileRepository on PostgreSQL
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// UpsertProfile creates a profile on first contact or refreshes the display
// name on subsequent ones, returning the stored row.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, userID int64, displayName string) (*models.UserProfile, error) {
	query := `
		INSERT INTO profiles (user_id, display_name, completed_trips, verified, created_at, updated_at)
		VALUES ($1, $2, 0, FALSE, $3, $3)
		ON CONFLICT (user_id) DO UPDATE
			SET display_name = EXCLUDED.display_name, updated_at = EXCLUDED.updated_at
		RETURNING user_id, display_name, completed_trips, verified, created_at, updated_at
	`

	var profile models.UserProfile
	if err := r.db.GetContext(ctx, &profile, query, userID, displayName, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return &profile, nil
}

// GetProfile returns a profile by user id, or bot.ErrProfileNotFound.
func (r *ProfileRepo) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT user_id, display_name, completed_trips, verified, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.UserProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bot.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// IncrementCompletedTrips bumps the completed trip count for a user
func (r *ProfileRepo) IncrementCompletedTrips(ctx context.Context, userID int64) error {
	query := `UPDATE profiles SET completed_trips = completed_trips + 1, updated_at = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to increment completed trips: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check completed trips update: %w", err)
	}
	if rows == 0 {
		return bot.ErrProfileNotFound
	}

	return nil
}

// MarkVerified sets the verified flag. Verification is monotonic: this is the
// only write to the flag and it never clears it.
func (r *ProfileRepo) MarkVerified(ctx context.Context, userID int64) error {
	query := `UPDATE profiles SET verified = TRUE, updated_at = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to mark profile verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check verification update: %w", err)
	}
	if rows == 0 {
		return bot.ErrProfileNotFound
	}

	return nil
}
