package models

// ScaleConfig controls the geometric transform of one or more tracks.
// StartLat/StartLon relocate the route's first point; both must be set for
// relocation to apply. MinDistanceKm and MaxAscentM, when set, may rewrite
// the requested scale factors (see scaler.EffectiveDistanceScale and
// scaler.EffectiveAscentScale).
type ScaleConfig struct {
	DistanceScale  float64  `json:"distance_scale"`
	AscentScale    float64  `json:"ascent_scale"`
	StartLat       *float64 `json:"start_lat,omitempty"`
	StartLon       *float64 `json:"start_lon,omitempty"`
	StartElevation *float64 `json:"start_elevation,omitempty"` // meters, base elevation at the relocated start
	MinDistanceKm  *float64 `json:"min_distance_km,omitempty"`
	MaxAscentM     *float64 `json:"max_ascent_m,omitempty"`
}

// Relocated reports whether the config moves the route's start point.
func (c ScaleConfig) Relocated() bool {
	return c.StartLat != nil && c.StartLon != nil
}

// RiderParams are the rider inputs of the power-balance duration model.
type RiderParams struct {
	PowerWatts float64 `json:"power_watts"`
	WeightKg   float64 `json:"weight_kg"`
}
