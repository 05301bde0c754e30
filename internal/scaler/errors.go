package scaler

import "errors"

// Validation failures detected before any computation runs. Callers match
// them with errors.Is.
var (
	// ErrInvalidTrack marks a malformed or too-short point sequence.
	ErrInvalidTrack = errors.New("invalid track")
	// ErrInvalidConfig marks non-positive scale factors.
	ErrInvalidConfig = errors.New("invalid scale config")
)
