package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
	"github.com/jengzang/gpxscaler-backend-go/pkg/response"
)

// ProgressHandler exposes batch session state.
type ProgressHandler struct {
	batch *service.BatchService
}

func NewProgressHandler(batch *service.BatchService) *ProgressHandler {
	return &ProgressHandler{batch: batch}
}

// Progress handles GET /api/v1/progress/:session_id.
func (h *ProgressHandler) Progress(c *gin.Context) {
	snap, err := h.batch.Snapshot(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, snap)
}

// Stream handles GET /api/v1/progress/:session_id/stream. It pushes
// progress snapshots over SSE until the session reaches a terminal state,
// ending with that final snapshot.
func (h *ProgressHandler) Stream(c *gin.Context) {
	sessionID := c.Param("session_id")
	if _, err := h.batch.Snapshot(sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Cache-Control", "no-cache")
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	// The first snapshot goes out right away so a batch that finishes
	// within the first tick is still seen by the subscriber.
	first := true
	c.Stream(func(w io.Writer) bool {
		if !first {
			select {
			case <-c.Request.Context().Done():
				return false
			case <-ticker.C:
			}
		}
		first = false

		snap, err := h.batch.Snapshot(sessionID)
		if err != nil {
			return false
		}
		c.SSEvent("progress", snap)
		return snap.Status == models.SessionStatusProcessing
	})
}

// Cancel handles DELETE /api/v1/progress/:session_id.
func (h *ProgressHandler) Cancel(c *gin.Context) {
	err := h.batch.Cancel(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.SuccessWithMessage(c, "cancellation requested", nil)
}
