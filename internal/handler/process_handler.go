package handler

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/config"
	"github.com/jengzang/gpxscaler-backend-go/internal/elevation"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
	"github.com/jengzang/gpxscaler-backend-go/pkg/response"
)

// ProcessHandler starts batch scale runs.
type ProcessHandler struct {
	batch     *service.BatchService
	uploads   *repository.UploadRepository
	elevation *elevation.Client
	cfg       *config.Config
}

func NewProcessHandler(batch *service.BatchService, uploads *repository.UploadRepository, elev *elevation.Client, cfg *config.Config) *ProcessHandler {
	return &ProcessHandler{batch: batch, uploads: uploads, elevation: elev, cfg: cfg}
}

// ProcessRequest is the payload for POST /api/v1/process. Scale fields are
// pointers so an omitted value can default to 1 while an explicit 0 still
// gets rejected downstream.
type ProcessRequest struct {
	FileIDs        []string `json:"file_ids" binding:"required"`
	DistanceScale  *float64 `json:"distance_scale"`
	AscentScale    *float64 `json:"ascent_scale"`
	StartLat       *float64 `json:"start_lat"`
	StartLon       *float64 `json:"start_lon"`
	StartElevation *float64 `json:"start_elevation"`
	MinDistanceKm  *float64 `json:"min_distance_km"`
	MaxAscentM     *float64 `json:"max_ascent_m"`
	PowerWatts     *float64 `json:"power_watts"`
	WeightKg       *float64 `json:"weight_kg"`
	Format         string   `json:"output_format"`
	BaseName       string   `json:"base_name"`
	AddTiming      bool     `json:"add_timing"`
}

// Process handles POST /api/v1/process. Unknown file ids are skipped
// rather than failing the request; the response carries the session id to
// poll for progress.
func (h *ProcessHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	format := codec.FormatGPX
	if req.Format != "" {
		f, err := codec.ParseFormat(req.Format)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		format = f
	}

	cfg := models.ScaleConfig{
		DistanceScale:  floatOr(req.DistanceScale, 1),
		AscentScale:    floatOr(req.AscentScale, 1),
		StartLat:       req.StartLat,
		StartLon:       req.StartLon,
		StartElevation: req.StartElevation,
		MinDistanceKm:  req.MinDistanceKm,
		MaxAscentM:     req.MaxAscentM,
	}

	// A relocated route without an explicit start elevation gets the
	// terrain elevation at the new start. Lookup failures are not fatal;
	// the route then keeps its original base elevation.
	if cfg.Relocated() && cfg.StartElevation == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if ele, err := h.elevation.Lookup(ctx, *cfg.StartLat, *cfg.StartLon); err != nil {
			log.Printf("elevation lookup for %.5f,%.5f failed: %v", *cfg.StartLat, *cfg.StartLon, err)
		} else {
			cfg.StartElevation = &ele
		}
	}

	var items []models.BatchItem
	for _, id := range req.FileIDs {
		up, err := h.uploads.GetByID(id)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		if up == nil {
			log.Printf("process: skipping unknown file id %s", id)
			continue
		}
		items = append(items, models.BatchItem{FileID: up.ID, Filename: up.Filename})
	}
	if len(items) == 0 {
		response.BadRequest(c, "no valid file ids to process")
		return
	}

	sessionID, err := h.batch.Submit(items, service.BatchOptions{
		Config: cfg,
		Rider: models.RiderParams{
			PowerWatts: floatOr(req.PowerWatts, h.cfg.DefaultPowerWatts),
			WeightKg:   floatOr(req.WeightKg, h.cfg.DefaultWeightKg),
		},
		Format:    format,
		BaseName:  req.BaseName,
		AddTiming: req.AddTiming,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "processing started", gin.H{"session_id": sessionID, "total_files": len(items)})
}

func floatOr(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}
