package utils

import (
	"math"

	"github.com/kyudan/motemovil/internal/pkg/models"
	"github.com/mmcloughlin/geohash"
)

// Earth's radius in meters
const earthRadiusM = 6371000.0

// ZonePrecision is the geohash precision used for match prefiltering. A
// five-character zone plus its eight neighbors contains every point within
// one cell dimension of the zone, so the prefilter is exact up to that bound.
const ZonePrecision uint = 5

// Cell spans in degrees at precision 5: 25 bits split as 13 longitude bits
// and 12 latitude bits.
const (
	zoneLonSpanDeg = 360.0 / 8192.0
	zoneLatSpanDeg = 180.0 / 4096.0
)

// ZoneSafeRadiusM returns the largest search radius in meters at the given
// latitude for which the zone-plus-neighbors prefilter cannot exclude a
// candidate. Cell height is constant; cell width shrinks with latitude, so
// the bound is the smaller of the two.
func ZoneSafeRadiusM(lat float64) float64 {
	const metersPerDegree = earthRadiusM * math.Pi / 180.0
	latCellM := zoneLatSpanDeg * metersPerDegree
	lonCellM := zoneLonSpanDeg * metersPerDegree * math.Cos(lat*math.Pi/180.0)
	return math.Min(latCellM, lonCellM)
}

// DistanceMeters calculates the great-circle distance between two points in
// meters using the haversine formula. Inputs are degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180.0
	rlon1 := lon1 * math.Pi / 180.0
	rlat2 := lat2 * math.Pi / 180.0
	rlon2 := lon2 * math.Pi / 180.0

	dLat := rlat2 - rlat1
	dLon := rlon2 - rlon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// EncodeLocation converts a location to a zone geohash string
func EncodeLocation(location models.Location) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, ZonePrecision)
}

// ZoneAndNeighbors returns the zone for a location plus its eight neighboring
// zones, for use as a coarse prefilter before exact distance ranking.
func ZoneAndNeighbors(location models.Location) []string {
	zone := EncodeLocation(location)
	return append([]string{zone}, geohash.Neighbors(zone)...)
}
