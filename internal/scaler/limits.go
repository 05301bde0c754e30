package scaler

// EffectiveDistanceScale returns the distance scale factor the transform
// actually applies. When a minimum distance is set and the requested scale
// would undershoot it, the smallest satisfying factor is minKm/originalKm;
// the relationship is linear, so this is a closed form, not a search. The
// floor overrides the requested scale, it is never blended with it.
func EffectiveDistanceScale(originalKm, requested float64, minKm *float64) float64 {
	if minKm == nil || originalKm <= 0 {
		return requested
	}
	if originalKm*requested < *minKm {
		return *minKm / originalKm
	}
	return requested
}

// EffectiveAscentScale returns the elevation scale factor the transform
// actually applies: when a maximum ascent is set and the requested scale
// would overshoot it, the factor is capped at maxM/originalAscentM.
func EffectiveAscentScale(originalAscentM, requested float64, maxM *float64) float64 {
	if maxM == nil || originalAscentM <= 0 {
		return requested
	}
	if originalAscentM*requested > *maxM {
		return *maxM / originalAscentM
	}
	return requested
}
