package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpxscaler-backend-go/internal/config"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
	"github.com/jengzang/gpxscaler-backend-go/pkg/response"
)

// PreviewHandler serves route geometry for the map view.
type PreviewHandler struct {
	scale *service.ScaleService
	cfg   *config.Config
}

func NewPreviewHandler(scale *service.ScaleService, cfg *config.Config) *PreviewHandler {
	return &PreviewHandler{scale: scale, cfg: cfg}
}

// Preview handles GET /api/v1/preview/:id.
func (h *PreviewHandler) Preview(c *gin.Context) {
	route, err := h.scale.Preview(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, route)
}

// PreviewScaled handles GET /api/v1/preview/:id/scaled. Scale parameters
// arrive as query values; omitted scales default to 1 and omitted rider
// data falls back to the configured defaults.
func (h *PreviewHandler) PreviewScaled(c *gin.Context) {
	cfg := models.ScaleConfig{
		DistanceScale:  queryFloatDefault(c, "distance_scale", 1),
		AscentScale:    queryFloatDefault(c, "ascent_scale", 1),
		StartLat:       queryFloatPtr(c, "start_lat"),
		StartLon:       queryFloatPtr(c, "start_lon"),
		StartElevation: queryFloatPtr(c, "start_elevation"),
		MinDistanceKm:  queryFloatPtr(c, "min_distance_km"),
		MaxAscentM:     queryFloatPtr(c, "max_ascent_m"),
	}
	rider := models.RiderParams{
		PowerWatts: queryFloatDefault(c, "power_watts", h.cfg.DefaultPowerWatts),
		WeightKg:   queryFloatDefault(c, "weight_kg", h.cfg.DefaultWeightKg),
	}

	result, err := h.scale.PreviewScaled(c.Param("id"), cfg, rider)
	if err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, result)
}

func queryFloatDefault(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryFloatPtr(c *gin.Context, key string) *float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
