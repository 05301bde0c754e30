package scaler

import (
	"fmt"
	"math"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/spatial"
)

// BuildTrack derives a Track from an ordered point sequence: cumulative
// great-circle distance per point plus total distance, ascent and descent.
// The input slice is not retained.
func BuildTrack(points []models.TrackPoint) (*models.Track, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidTrack, len(points))
	}

	pts := make([]models.TrackPoint, len(points))
	copy(pts, points)

	var distance, ascent, descent float64
	for i := range pts {
		p := &pts[i]
		if !validCoordinate(p.Latitude, p.Longitude) {
			return nil, fmt.Errorf("%w: point %d has invalid coordinates (%v, %v)",
				ErrInvalidTrack, i, p.Latitude, p.Longitude)
		}
		if i == 0 {
			p.Distance = 0
			continue
		}

		prev := pts[i-1]
		distance += spatial.HaversineKm(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		p.Distance = distance

		delta := p.Elevation - prev.Elevation
		if delta > 0 {
			ascent += delta
		} else {
			descent += -delta
		}
	}

	return &models.Track{
		Points:        pts,
		TotalDistance: distance,
		TotalAscent:   ascent,
		TotalDescent:  descent,
	}, nil
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
