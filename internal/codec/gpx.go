package codec

import (
	"fmt"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
)

// ParseGPX decodes a GPX document into an ordered point sequence and the
// route's name. Track segments are flattened in order; when a document
// carries only <rte> routes, those points are used instead — downstream the
// two are indistinguishable.
func ParseGPX(data []byte) ([]models.TrackPoint, string, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse gpx: %w", err)
	}

	name := doc.Name
	var points []models.TrackPoint
	for _, trk := range doc.Tracks {
		if name == "" {
			name = trk.Name
		}
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				points = append(points, trackPoint(p))
			}
		}
	}
	if len(points) == 0 {
		for _, rte := range doc.Routes {
			if name == "" {
				name = rte.Name
			}
			for _, p := range rte.Points {
				points = append(points, trackPoint(p))
			}
		}
	}

	return points, name, nil
}

func trackPoint(p gpx.GPXPoint) models.TrackPoint {
	tp := models.TrackPoint{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
	if p.Elevation.NotNull() {
		tp.Elevation = p.Elevation.Value()
	}
	return tp
}

// EncodeGPX renders the track as a single-segment GPX 1.1 document.
func EncodeGPX(track *models.Track, name string, times []time.Time) ([]byte, error) {
	segment := gpx.GPXTrackSegment{}
	for i, p := range track.Points {
		point := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Elevation: *gpx.NewNullableFloat64(p.Elevation),
			},
		}
		if times != nil {
			point.Timestamp = times[i]
		}
		segment.Points = append(segment.Points, point)
	}

	doc := &gpx.GPX{
		Creator: "gpxscaler",
		Name:    name,
		Tracks: []gpx.GPXTrack{{
			Name:     name,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gpx: %w", err)
	}
	return out, nil
}
