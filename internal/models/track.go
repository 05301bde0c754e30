package models

// TrackPoint is one position sample of a route.
type TrackPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Elevation float64 `json:"ele"`      // meters
	Distance  float64 `json:"distance"` // cumulative km from the first point
}

// Track is a normalized, format-agnostic route with derived aggregates.
// A Track is built once from parsed input and never mutated; scaling
// produces a new Track.
type Track struct {
	Points        []TrackPoint `json:"points"`
	TotalDistance float64      `json:"total_distance"` // km
	TotalAscent   float64      `json:"total_ascent"`   // m
	TotalDescent  float64      `json:"total_descent"`  // m
}

// Bounds is the bounding box of a route, used by map previews.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Bounds returns the bounding box of the track's points.
func (t *Track) Bounds() *Bounds {
	if len(t.Points) == 0 {
		return nil
	}
	b := &Bounds{
		MinLat: t.Points[0].Latitude,
		MaxLat: t.Points[0].Latitude,
		MinLon: t.Points[0].Longitude,
		MaxLon: t.Points[0].Longitude,
	}
	for _, p := range t.Points[1:] {
		if p.Latitude < b.MinLat {
			b.MinLat = p.Latitude
		}
		if p.Latitude > b.MaxLat {
			b.MaxLat = p.Latitude
		}
		if p.Longitude < b.MinLon {
			b.MinLon = p.Longitude
		}
		if p.Longitude > b.MaxLon {
			b.MaxLon = p.Longitude
		}
	}
	return b
}

// RouteData is the preview payload for route visualization: raw points plus
// parallel elevation and cumulative-distance series for charting.
type RouteData struct {
	Points        []TrackPoint `json:"points"`
	Elevations    []float64    `json:"elevations"`
	Distances     []float64    `json:"distances"`
	TotalDistance float64      `json:"total_distance"`
	TotalAscent   float64      `json:"total_ascent"`
	Bounds        *Bounds      `json:"bounds"`
}

// RouteDataFromTrack flattens a Track into chart-ready series.
func RouteDataFromTrack(t *Track) *RouteData {
	elevations := make([]float64, len(t.Points))
	distances := make([]float64, len(t.Points))
	for i, p := range t.Points {
		elevations[i] = p.Elevation
		distances[i] = p.Distance
	}
	return &RouteData{
		Points:        t.Points,
		Elevations:    elevations,
		Distances:     distances,
		TotalDistance: t.TotalDistance,
		TotalAscent:   t.TotalAscent,
		Bounds:        t.Bounds(),
	}
}
