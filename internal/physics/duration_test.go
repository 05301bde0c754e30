package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

func TestEstimateDurationFlatBallpark(t *testing.T) {
	// 40 km flat at 250 W / 75 kg rides at roughly 10.5 m/s, so a bit over
	// an hour.
	hours, err := EstimateDuration(40, 0, models.RiderParams{PowerWatts: 250, WeightKg: 75})
	require.NoError(t, err)
	assert.Greater(t, hours, 0.8)
	assert.Less(t, hours, 1.5)
}

func TestEstimateDurationPowerMonotonic(t *testing.T) {
	rider := func(power float64) models.RiderParams {
		return models.RiderParams{PowerWatts: power, WeightKg: 75}
	}

	prev := 1e18
	for _, power := range []float64{100, 150, 200, 250, 300, 400} {
		hours, err := EstimateDuration(60, 800, rider(power))
		require.NoError(t, err)
		assert.Less(t, hours, prev, "power %v", power)
		prev = hours
	}
}

func TestEstimateDurationAscentAddsTime(t *testing.T) {
	rider := models.RiderParams{PowerWatts: 200, WeightKg: 75}

	flat, err := EstimateDuration(50, 0, rider)
	require.NoError(t, err)
	hilly, err := EstimateDuration(50, 1500, rider)
	require.NoError(t, err)

	assert.Greater(t, hilly, flat)
}

func TestEstimateDurationSteepShortTrack(t *testing.T) {
	// Ascent distance (2 km) exceeds total distance: the flat segment is
	// clamped to zero and the result stays finite and positive.
	hours, err := EstimateDuration(1, 2000, models.RiderParams{PowerWatts: 250, WeightKg: 75})
	require.NoError(t, err)
	assert.Greater(t, hours, 0.0)
	assert.Less(t, hours, 24.0)
}

func TestEstimateDurationDeterministic(t *testing.T) {
	rider := models.RiderParams{PowerWatts: 217, WeightKg: 81}

	a, err := EstimateDuration(73.4, 1234, rider)
	require.NoError(t, err)
	b, err := EstimateDuration(73.4, 1234, rider)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateDurationRejectsBadParams(t *testing.T) {
	_, err := EstimateDuration(40, 0, models.RiderParams{PowerWatts: 0, WeightKg: 75})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = EstimateDuration(40, 0, models.RiderParams{PowerWatts: 250, WeightKg: -1})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
