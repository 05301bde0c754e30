package physics

import (
	"fmt"
	"time"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

const (
	gradeFactor    = 0.04 // speed reduction per 1% grade
	minAdjustment  = 0.3
	maxAdjustment  = 1.8
	minRidingSpeed = 3.0 // m/s, ~11 km/h
	// Timestamped rides are backdated so they end shortly before "now".
	startBuffer = 10 * time.Minute
)

// segmentSpeed estimates a riding speed in m/s for one inter-point segment
// from power-to-weight and local grade. Unlike steadySpeed this is a
// calibrated table model: per-segment smoothness matters more here than
// physical fidelity, since it only spaces timestamps along the route.
func segmentSpeed(power, weight, elevChangeM, distanceM float64) float64 {
	ptw := power / weight

	var factor float64
	switch {
	case ptw > 4.0:
		factor = 8.5
	case ptw > 3.0:
		factor = 9.5
	case ptw > 2.2:
		factor = 11.5
	case ptw > 1.6:
		factor = 13.5
	case ptw > 1.2:
		factor = 16.0
	default:
		factor = 15.0
	}
	speed := ptw * factor / 3.6 // km/h to m/s

	if distanceM > 0 {
		gradePercent := elevChangeM / distanceM * 100
		adjustment := 1 - gradePercent*gradeFactor
		if adjustment < minAdjustment {
			adjustment = minAdjustment
		}
		if adjustment > maxAdjustment {
			adjustment = maxAdjustment
		}
		speed *= adjustment
	}

	if speed < minRidingSpeed {
		speed = minRidingSpeed
	}
	return speed
}

// PointTimes assigns a timestamp to every point of the track by walking the
// route at segmentSpeed. times[0] is start; timestamps are strictly
// non-decreasing.
func PointTimes(t *models.Track, rider models.RiderParams, start time.Time) ([]time.Time, error) {
	if rider.PowerWatts <= 0 || rider.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: power and weight must be positive", ErrInvalidParams)
	}

	times := make([]time.Time, len(t.Points))
	current := start
	times[0] = current
	for i := 1; i < len(t.Points); i++ {
		distM := (t.Points[i].Distance - t.Points[i-1].Distance) * 1000
		elevChange := t.Points[i].Elevation - t.Points[i-1].Elevation

		v := segmentSpeed(rider.PowerWatts, rider.WeightKg, elevChange, distM)
		current = current.Add(time.Duration(distM / v * float64(time.Second)))
		times[i] = current
	}
	return times, nil
}

// RideStartTime backdates a ride so it finishes about ten minutes before
// now, which keeps generated activities importable as already-completed.
func RideStartTime(t *models.Track, rider models.RiderParams, now time.Time) (time.Time, error) {
	hours, err := EstimateTrack(t, rider)
	if err != nil {
		return time.Time{}, err
	}
	duration := time.Duration(hours * float64(time.Hour))
	return now.Add(-duration - startBuffer), nil
}
