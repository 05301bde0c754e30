package service

import (
	"errors"
	"fmt"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/physics"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
)

// ErrUploadNotFound marks a preview request for an unknown upload id.
var ErrUploadNotFound = errors.New("upload not found")

// TimingEstimate is a ride duration in both precisions the frontend wants.
type TimingEstimate struct {
	DurationHours   float64 `json:"duration_hours"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// PreviewResult pairs a route's original geometry with its scaled form and
// the duration estimates for both.
type PreviewResult struct {
	Original       *models.RouteData `json:"original"`
	Scaled         *models.RouteData `json:"scaled"`
	OriginalTiming *TimingEstimate   `json:"original_timing"`
	ScaledTiming   *TimingEstimate   `json:"scaled_timing"`
	DistanceScale  float64           `json:"distance_scale"`
	AscentScale    float64           `json:"ascent_scale"`
}

// ScaleService computes map previews from stored uploads.
type ScaleService struct {
	uploads *repository.UploadRepository
}

func NewScaleService(uploads *repository.UploadRepository) *ScaleService {
	return &ScaleService{uploads: uploads}
}

// trackFromUpload parses a stored upload back into a track. The batch
// runner shares this path so preview and processing cannot disagree on
// what a file contains.
func trackFromUpload(u *models.Upload) (*models.Track, string, error) {
	points, name, err := codec.ParseGPX(u.Content)
	if err != nil {
		return nil, "", err
	}
	track, err := scaler.BuildTrack(points)
	if err != nil {
		return nil, "", err
	}
	if name == "" {
		name = u.Filename
	}
	return track, name, nil
}

// Preview returns the original route geometry for a stored upload.
func (s *ScaleService) Preview(id string) (*models.RouteData, error) {
	up, err := s.uploads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, fmt.Errorf("%w: %s", ErrUploadNotFound, id)
	}
	track, _, err := trackFromUpload(up)
	if err != nil {
		return nil, err
	}
	return models.RouteDataFromTrack(track), nil
}

// PreviewScaled applies the scale configuration to a stored upload and
// returns both geometries with duration estimates. The scaled estimate
// runs the full model on the transformed track rather than prorating the
// original figure.
func (s *ScaleService) PreviewScaled(id string, cfg models.ScaleConfig, rider models.RiderParams) (*PreviewResult, error) {
	up, err := s.uploads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, fmt.Errorf("%w: %s", ErrUploadNotFound, id)
	}

	track, _, err := trackFromUpload(up)
	if err != nil {
		return nil, err
	}
	scaled, err := scaler.Transform(track, cfg)
	if err != nil {
		return nil, err
	}

	origHours, err := physics.EstimateTrack(track, rider)
	if err != nil {
		return nil, err
	}
	scaledHours, err := physics.EstimateTrack(scaled, rider)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Original:       models.RouteDataFromTrack(track),
		Scaled:         models.RouteDataFromTrack(scaled),
		OriginalTiming: &TimingEstimate{DurationHours: origHours, DurationSeconds: origHours * 3600},
		ScaledTiming:   &TimingEstimate{DurationHours: scaledHours, DurationSeconds: scaledHours * 3600},
		DistanceScale:  scaler.EffectiveDistanceScale(track.TotalDistance, cfg.DistanceScale, cfg.MinDistanceKm),
		AscentScale:    scaler.EffectiveAscentScale(track.TotalAscent, cfg.AscentScale, cfg.MaxAscentM),
	}, nil
}
