package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth's mean radius. Every distance in the scaler goes through these
// constants, so scaled routes stay self-consistent even though a spherical
// model is only approximate.
const (
	EarthRadiusKm     = 6371.0
	EarthRadiusMeters = 6371000.0
)

// HaversineKm returns the great-circle distance between two points in
// kilometers on a spherical Earth.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Bearing returns the initial bearing (forward azimuth) from point 1 to
// point 2 in radians, in (-π, π]. 0 is North, π/2 is East.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	return math.Atan2(y, x)
}

// DestinationPoint returns the point reached by traveling distanceKm along
// the great circle leaving (lat, lon) at bearingRad.
func DestinationPoint(lat, lon, bearingRad, distanceKm float64) (float64, float64) {
	p := s2.LatLngFromDegrees(lat, lon)
	angular := distanceKm / EarthRadiusKm

	latRad := p.Lat.Radians()
	lonRad := p.Lng.Radians()

	lat2 := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	lon2 := lonRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(lat2))

	// Wrap into [-180, 180]; a step across the antimeridian would
	// otherwise leave the valid longitude range.
	lonDeg := math.Mod(lon2*180/math.Pi+540, 360) - 180

	return lat2 * 180 / math.Pi, lonDeg
}
