package scaler

import (
	"fmt"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/spatial"
)

// Transform returns a new track scaled in distance and elevation, optionally
// re-anchored at cfg.StartLat/StartLon.
//
// The path is rebuilt as a walk from the start point: for each original
// segment the great-circle length is multiplied by the effective distance
// scale while the original bearing is kept exactly. That keeps the scaled
// route geometrically similar to the input; scaling raw coordinates instead
// would skew bearings away from the equator.
//
// Elevations become base + (orig − origBase) × ascentScale, anchored at the
// first point, so ascent and descent shrink or grow by the same factor and
// the profile's shape survives. A relocated start may supply its own base
// elevation via cfg.StartElevation.
func Transform(track *models.Track, cfg models.ScaleConfig) (*models.Track, error) {
	if track == nil || len(track.Points) < 2 {
		return nil, fmt.Errorf("%w: nothing to transform", ErrInvalidTrack)
	}
	if cfg.DistanceScale <= 0 {
		return nil, fmt.Errorf("%w: distance scale must be positive, got %v", ErrInvalidConfig, cfg.DistanceScale)
	}
	if cfg.AscentScale <= 0 {
		return nil, fmt.Errorf("%w: ascent scale must be positive, got %v", ErrInvalidConfig, cfg.AscentScale)
	}

	distScale := EffectiveDistanceScale(track.TotalDistance, cfg.DistanceScale, cfg.MinDistanceKm)
	elevScale := EffectiveAscentScale(track.TotalAscent, cfg.AscentScale, cfg.MaxAscentM)

	orig := track.Points
	startLat, startLon := orig[0].Latitude, orig[0].Longitude
	if cfg.Relocated() {
		startLat, startLon = *cfg.StartLat, *cfg.StartLon
	}
	origBase := orig[0].Elevation
	base := origBase
	if cfg.StartElevation != nil {
		base = *cfg.StartElevation
	}

	out := make([]models.TrackPoint, len(orig))
	out[0] = models.TrackPoint{Latitude: startLat, Longitude: startLon, Elevation: base}
	for i := 1; i < len(orig); i++ {
		prev := orig[i-1]
		curr := orig[i]

		stepKm := spatial.HaversineKm(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude) * distScale
		bearing := spatial.Bearing(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)

		lat, lon := spatial.DestinationPoint(out[i-1].Latitude, out[i-1].Longitude, bearing, stepKm)
		out[i] = models.TrackPoint{
			Latitude:  lat,
			Longitude: lon,
			Elevation: base + (curr.Elevation-origBase)*elevScale,
		}
	}

	return BuildTrack(out)
}
