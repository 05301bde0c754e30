package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
)

func timingTrack(t *testing.T) *models.Track {
	t.Helper()
	track, err := scaler.BuildTrack([]models.TrackPoint{
		{Latitude: 48.80, Longitude: 2.30, Elevation: 100},
		{Latitude: 48.81, Longitude: 2.31, Elevation: 160},
		{Latitude: 48.82, Longitude: 2.32, Elevation: 140},
		{Latitude: 48.83, Longitude: 2.33, Elevation: 180},
	})
	require.NoError(t, err)
	return track
}

func TestPointTimes(t *testing.T) {
	track := timingTrack(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	times, err := PointTimes(track, models.RiderParams{PowerWatts: 250, WeightKg: 75}, start)
	require.NoError(t, err)
	require.Equal(t, len(track.Points), len(times))

	assert.Equal(t, start, times[0])
	for i := 1; i < len(times); i++ {
		assert.True(t, times[i].After(times[i-1]), "point %d", i)
	}
}

func TestPointTimesRejectsBadParams(t *testing.T) {
	track := timingTrack(t)
	_, err := PointTimes(track, models.RiderParams{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRideStartTimeIsBeforeNow(t *testing.T) {
	track := timingTrack(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	start, err := RideStartTime(track, models.RiderParams{PowerWatts: 250, WeightKg: 75}, now)
	require.NoError(t, err)

	assert.True(t, start.Before(now.Add(-startBuffer).Add(time.Second)))
}

func TestSegmentSpeedBounds(t *testing.T) {
	// Steep uphill floors at the minimum riding speed.
	assert.Equal(t, minRidingSpeed, segmentSpeed(100, 90, 200, 500))
	// Downhill speeds up but stays bounded by the max adjustment.
	flat := segmentSpeed(250, 75, 0, 1000)
	down := segmentSpeed(250, 75, -100, 1000)
	assert.Greater(t, down, flat)
	assert.LessOrEqual(t, down, flat*maxAdjustment+1e-9)
}
