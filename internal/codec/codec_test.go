package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Stage-3 Hills</name>
    <trkseg>
      <trkpt lat="48.80" lon="2.30"><ele>100</ele></trkpt>
      <trkpt lat="48.81" lon="2.31"><ele>150</ele></trkpt>
      <trkpt lat="48.82" lon="2.32"><ele>120</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

const sampleRouteGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <name>RouteOnly</name>
    <rtept lat="52.50" lon="4.00"><ele>5</ele></rtept>
    <rtept lat="52.51" lon="4.01"><ele>15</ele></rtept>
  </rte>
</gpx>`

func TestParseFormat(t *testing.T) {
	for _, tag := range []string{"gpx", "TCX", " fit "} {
		f, err := ParseFormat(tag)
		require.NoError(t, err)
		assert.NotEmpty(t, f)
	}

	_, err := ParseFormat("kml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseGPXTrack(t *testing.T) {
	points, name, err := ParseGPX([]byte(sampleGPX))
	require.NoError(t, err)

	assert.Equal(t, "Stage-3 Hills", name)
	require.Len(t, points, 3)
	assert.InDelta(t, 48.80, points[0].Latitude, 1e-9)
	assert.InDelta(t, 150, points[1].Elevation, 1e-9)
}

func TestParseGPXRouteFallback(t *testing.T) {
	points, name, err := ParseGPX([]byte(sampleRouteGPX))
	require.NoError(t, err)

	assert.Equal(t, "RouteOnly", name)
	require.Len(t, points, 2)
	assert.InDelta(t, 4.01, points[1].Longitude, 1e-9)
}

func TestParseGPXRejectsGarbage(t *testing.T) {
	_, _, err := ParseGPX([]byte("not gpx at all"))
	assert.Error(t, err)
}

func TestEncodeGPXRoundTrip(t *testing.T) {
	points, _, err := ParseGPX([]byte(sampleGPX))
	require.NoError(t, err)
	track, err := scaler.BuildTrack(points)
	require.NoError(t, err)

	data, err := EncodeGPX(track, "Scaled Stage", nil)
	require.NoError(t, err)

	back, name, err := ParseGPX(data)
	require.NoError(t, err)
	assert.Equal(t, "Scaled Stage", name)
	require.Len(t, back, len(track.Points))
	for i := range back {
		assert.InDelta(t, track.Points[i].Latitude, back[i].Latitude, 1e-6)
		assert.InDelta(t, track.Points[i].Elevation, back[i].Elevation, 0.1)
	}
}

func TestEncodeTCX(t *testing.T) {
	points, _, err := ParseGPX([]byte(sampleGPX))
	require.NoError(t, err)
	track, err := scaler.BuildTrack(points)
	require.NoError(t, err)

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	times := []time.Time{start, start.Add(2 * time.Minute), start.Add(5 * time.Minute)}

	data, err := EncodeTCX(track, "ignored", times)
	require.NoError(t, err)

	doc := string(data)
	assert.Contains(t, doc, `<Activity Sport="Biking">`)
	assert.Contains(t, doc, "<TotalTimeSeconds>300.0</TotalTimeSeconds>")
	assert.Contains(t, doc, "<LatitudeDegrees>48.8000000</LatitudeDegrees>")
	assert.Equal(t, 3, strings.Count(doc, "<Trackpoint>"))
}

func TestEncodeRejectsMismatchedTiming(t *testing.T) {
	points, _, err := ParseGPX([]byte(sampleGPX))
	require.NoError(t, err)
	track, err := scaler.BuildTrack(points)
	require.NoError(t, err)

	_, err = Encode(FormatGPX, track, "x", []time.Time{time.Now()})
	assert.Error(t, err)
}
