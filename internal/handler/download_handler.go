package handler

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/pkg/response"
)

// DownloadHandler serves generated output files.
type DownloadHandler struct {
	outputs *repository.OutputRepository
}

func NewDownloadHandler(outputs *repository.OutputRepository) *DownloadHandler {
	return &DownloadHandler{outputs: outputs}
}

// Download handles GET /api/v1/download/:output_id.
func (h *DownloadHandler) Download(c *gin.Context) {
	out, err := h.outputs.GetByID(c.Param("output_id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if out == nil {
		response.NotFound(c, "output not found")
		return
	}

	format, _ := codec.ParseFormat(out.Format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(200, format.ContentType(), out.Payload)
}

type batchDownloadRequest struct {
	OutputIDs []string `json:"output_ids" binding:"required"`
}

// DownloadBatch handles POST /api/v1/download/batch. The selected outputs
// are bundled into a single zip; unknown ids are skipped.
func (h *DownloadHandler) DownloadBatch(c *gin.Context) {
	var req batchDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	outputs, err := h.outputs.GetByIDs(req.OutputIDs)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if len(outputs) == 0 {
		response.NotFound(c, "no outputs found for the given ids")
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, out := range outputs {
		w, err := zw.Create(out.Filename)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		if _, err := w.Write(out.Payload); err != nil {
			response.InternalError(c, err.Error())
			return
		}
	}
	if err := zw.Close(); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="scaled_gpx_files.zip"`)
	c.Data(200, "application/zip", buf.Bytes())
}
