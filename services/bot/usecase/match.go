package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/kyudan/motemovil/internal/utils"
	"github.com/kyudan/motemovil/services/bot"
)

// Matcher filters and ranks active driver trips against a passenger request.
type Matcher struct {
	trips  bot.TripRepository
	cfg    models.MatchConfig
	logger *logger.ZapLogger
}

// NewMatcher creates a new matching engine
func NewMatcher(trips bot.TripRepository, cfg models.MatchConfig, zapLogger *logger.ZapLogger) *Matcher {
	return &Matcher{
		trips:  trips,
		cfg:    cfg,
		logger: zapLogger,
	}
}

// FindMatches returns active driver trips within radiusM of the passenger
// position, ordered nearest first. When deadline is non-nil, drivers with a
// declared departure outside [requestTime, deadline] are excluded; drivers
// with no declared departure are kept. An empty result is a normal outcome,
// not an error.
func (m *Matcher) FindMatches(
	ctx context.Context,
	lat, lon float64,
	requestTime time.Time,
	deadline *time.Time,
	radiusM float64,
) ([]models.MatchCandidate, error) {
	if radiusM <= 0 {
		radiusM = m.cfg.SearchRadiusM
	}

	// The geohash zone prefilter only guarantees coverage up to the zone
	// size at this latitude; beyond that the full active set is scanned.
	var zones []string
	if radiusM <= utils.ZoneSafeRadiusM(lat) {
		zones = utils.ZoneAndNeighbors(models.Location{Latitude: lat, Longitude: lon})
	}

	trips, err := m.trips.ListActiveDriverTrips(ctx, zones)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver trips: %w", err)
	}

	candidates := make([]models.MatchCandidate, 0, len(trips))
	for _, trip := range trips {
		distance := utils.DistanceMeters(lat, lon, trip.Latitude, trip.Longitude)
		if distance > radiusM {
			continue
		}

		if deadline != nil && trip.DepartureAt != nil {
			if trip.DepartureAt.Before(requestTime) || trip.DepartureAt.After(*deadline) {
				continue
			}
		}

		candidates = append(candidates, models.MatchCandidate{
			Trip:      trip,
			DistanceM: distance,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.DistanceM != b.DistanceM {
			return a.DistanceM < b.DistanceM
		}
		if da, db := a.Trip.DepartureAt, b.Trip.DepartureAt; da != nil || db != nil {
			switch {
			case db == nil:
				return true
			case da == nil:
				return false
			case !da.Equal(*db):
				return da.Before(*db)
			}
		}
		return a.Trip.ID.String() < b.Trip.ID.String()
	})

	m.logger.Debug("Matching completed",
		logger.Float64("radius_m", radiusM),
		logger.Int("scanned", len(trips)),
		logger.Int("matched", len(candidates)))

	return candidates, nil
}

// Intercepts reports whether a driver trip lies within the stricter
// interception radius of the passenger position.
func (m *Matcher) Intercepts(lat, lon float64, trip *models.Trip) bool {
	return utils.DistanceMeters(lat, lon, trip.Latitude, trip.Longitude) <= m.cfg.InterceptionRadiusM
}
