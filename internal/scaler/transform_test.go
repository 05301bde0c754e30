package scaler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/spatial"
)

// syntheticTrack builds a winding route of n points starting near Paris,
// with an undulating elevation profile.
func syntheticTrack(t *testing.T, n int) *models.Track {
	t.Helper()
	pts := make([]models.TrackPoint, n)
	lat, lon := 48.80, 2.30
	for i := 0; i < n; i++ {
		pts[i] = models.TrackPoint{
			Latitude:  lat,
			Longitude: lon,
			Elevation: 100 + 80*math.Sin(float64(i)/7),
		}
		lat += 0.003 * math.Cos(float64(i)/11)
		lon += 0.004 * math.Sin(float64(i)/13)
	}
	track, err := BuildTrack(pts)
	require.NoError(t, err)
	return track
}

func TestTransformIdentity(t *testing.T) {
	track := syntheticTrack(t, 50)

	out, err := Transform(track, models.ScaleConfig{DistanceScale: 1, AscentScale: 1})
	require.NoError(t, err)

	require.Equal(t, len(track.Points), len(out.Points))
	for i := range track.Points {
		assert.InDelta(t, track.Points[i].Latitude, out.Points[i].Latitude, 1e-6)
		assert.InDelta(t, track.Points[i].Longitude, out.Points[i].Longitude, 1e-6)
		assert.InDelta(t, track.Points[i].Elevation, out.Points[i].Elevation, 1e-9)
	}
}

func TestTransformIdentityAcrossAntimeridian(t *testing.T) {
	track, err := BuildTrack([]models.TrackPoint{
		{Latitude: 10, Longitude: 179.99, Elevation: 10},
		{Latitude: 10, Longitude: -179.99, Elevation: 20},
		{Latitude: 10, Longitude: -179.97, Elevation: 15},
	})
	require.NoError(t, err)

	out, err := Transform(track, models.ScaleConfig{DistanceScale: 1, AscentScale: 1})
	require.NoError(t, err)

	require.Equal(t, len(track.Points), len(out.Points))
	for i := range track.Points {
		assert.InDelta(t, track.Points[i].Latitude, out.Points[i].Latitude, 1e-6)
		assert.InDelta(t, track.Points[i].Longitude, out.Points[i].Longitude, 1e-6)
	}
	assert.InEpsilon(t, track.TotalDistance, out.TotalDistance, 1e-6)
}

func TestTransformDistanceScaling(t *testing.T) {
	track := syntheticTrack(t, 120)

	for _, scale := range []float64{0.5, 0.75, 1.5, 2.0} {
		out, err := Transform(track, models.ScaleConfig{DistanceScale: scale, AscentScale: 1})
		require.NoError(t, err)

		want := track.TotalDistance * scale
		assert.InEpsilon(t, want, out.TotalDistance, 0.001, "scale %v", scale)
	}
}

func TestTransformPreservesBearings(t *testing.T) {
	track := syntheticTrack(t, 80)

	out, err := Transform(track, models.ScaleConfig{DistanceScale: 0.5, AscentScale: 1})
	require.NoError(t, err)

	for i := 1; i < len(track.Points); i++ {
		origBearing := spatial.Bearing(
			track.Points[i-1].Latitude, track.Points[i-1].Longitude,
			track.Points[i].Latitude, track.Points[i].Longitude)
		scaledBearing := spatial.Bearing(
			out.Points[i-1].Latitude, out.Points[i-1].Longitude,
			out.Points[i].Latitude, out.Points[i].Longitude)
		assert.InDelta(t, origBearing, scaledBearing, 1e-6, "segment %d", i)
	}
}

func TestTransformElevationAnchor(t *testing.T) {
	track := syntheticTrack(t, 40)
	base := track.Points[0].Elevation

	for _, scale := range []float64{0.25, 1.0, 3.0} {
		out, err := Transform(track, models.ScaleConfig{DistanceScale: 1, AscentScale: scale})
		require.NoError(t, err)

		// The first point's elevation is the anchor and never moves.
		assert.InDelta(t, base, out.Points[0].Elevation, 1e-12)
		// Ascent scales by the same factor.
		assert.InEpsilon(t, track.TotalAscent*scale, out.TotalAscent, 1e-9)
		assert.InEpsilon(t, track.TotalDescent*scale, out.TotalDescent, 1e-9)
	}
}

func TestTransformRelocation(t *testing.T) {
	track := syntheticTrack(t, 60)

	out, err := Transform(track, models.ScaleConfig{
		DistanceScale: 1,
		AscentScale:   1,
		StartLat:      floatPtr(52.5),
		StartLon:      floatPtr(4.0),
	})
	require.NoError(t, err)

	assert.InDelta(t, 52.5, out.Points[0].Latitude, 1e-12)
	assert.InDelta(t, 4.0, out.Points[0].Longitude, 1e-12)
	// Relocation preserves shape: total distance unchanged.
	assert.InEpsilon(t, track.TotalDistance, out.TotalDistance, 0.001)
}

func TestTransformRelocatedStartElevation(t *testing.T) {
	track := syntheticTrack(t, 30)

	out, err := Transform(track, models.ScaleConfig{
		DistanceScale:  1,
		AscentScale:    2,
		StartLat:       floatPtr(52.5),
		StartLon:       floatPtr(4.0),
		StartElevation: floatPtr(5),
	})
	require.NoError(t, err)

	assert.InDelta(t, 5, out.Points[0].Elevation, 1e-12)
	// Relief above the (new) base still doubles.
	origRelief := track.Points[10].Elevation - track.Points[0].Elevation
	assert.InDelta(t, 5+origRelief*2, out.Points[10].Elevation, 1e-9)
}

func TestTransformMinDistanceFloor(t *testing.T) {
	track := syntheticTrack(t, 120)

	out, err := Transform(track, models.ScaleConfig{
		DistanceScale: 0.1,
		AscentScale:   1,
		MinDistanceKm: floatPtr(track.TotalDistance * 0.8),
	})
	require.NoError(t, err)

	// The floor rewrites the factor to exactly 0.8.
	assert.InEpsilon(t, track.TotalDistance*0.8, out.TotalDistance, 0.001)
}

func TestTransformTwoPointScenario(t *testing.T) {
	track, err := BuildTrack([]models.TrackPoint{
		{Latitude: 48.8, Longitude: 2.3, Elevation: 100},
		{Latitude: 48.9, Longitude: 2.4, Elevation: 200},
	})
	require.NoError(t, err)

	out, err := Transform(track, models.ScaleConfig{DistanceScale: 0.5, AscentScale: 2.0})
	require.NoError(t, err)

	assert.InDelta(t, 100, out.Points[0].Elevation, 1e-12)
	assert.InDelta(t, 300, out.Points[1].Elevation, 1e-9) // 100 + (200-100)*2
	assert.InEpsilon(t, track.TotalDistance/2, out.TotalDistance, 1e-6)
}

func TestTransformRejectsBadConfig(t *testing.T) {
	track := syntheticTrack(t, 10)

	_, err := Transform(track, models.ScaleConfig{DistanceScale: 0, AscentScale: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Transform(track, models.ScaleConfig{DistanceScale: -1, AscentScale: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Transform(track, models.ScaleConfig{DistanceScale: 1, AscentScale: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Transform(nil, models.ScaleConfig{DistanceScale: 1, AscentScale: 1})
	assert.ErrorIs(t, err, ErrInvalidTrack)
}
