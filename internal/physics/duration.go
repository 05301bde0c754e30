package physics

import (
	"errors"
	"fmt"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// ErrInvalidParams marks non-positive rider power or weight.
var ErrInvalidParams = errors.New("invalid rider params")

// EstimateDuration estimates the time in hours to ride distanceKm with
// ascentM of climbing at the rider's average power.
//
// The route is reduced to two segments: one carrying all the ascent at its
// mean grade and one flat segment with the remaining distance. Flat distance
// is clamped to zero for short, steep tracks whose ascent distance exceeds
// the total; such a ride is modeled as climb only. A track with no ascent
// contributes no climb time, so the grade is never divided by zero.
func EstimateDuration(distanceKm, ascentM float64, rider models.RiderParams) (float64, error) {
	if rider.PowerWatts <= 0 {
		return 0, fmt.Errorf("%w: power must be positive, got %v", ErrInvalidParams, rider.PowerWatts)
	}
	if rider.WeightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidParams, rider.WeightKg)
	}

	ascentKm := ascentM / 1000
	flatKm := distanceKm - ascentKm
	if flatKm < 0 {
		flatKm = 0
	}

	var ascentTime, flatTime float64 // seconds
	if ascentKm > 0 {
		grade := ascentM / (ascentKm * 1000)
		v := steadySpeed(rider.PowerWatts, rider.WeightKg, grade)
		ascentTime = ascentKm * 1000 / v
	}
	if flatKm > 0 {
		v := steadySpeed(rider.PowerWatts, rider.WeightKg, 0)
		flatTime = flatKm * 1000 / v
	}

	return (ascentTime + flatTime) / 3600, nil
}

// EstimateTrack estimates the ride duration in hours for a whole track.
func EstimateTrack(t *models.Track, rider models.RiderParams) (float64, error) {
	return EstimateDuration(t.TotalDistance, t.TotalAscent, rider)
}
