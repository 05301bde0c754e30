package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jengzang/gpxscaler-backend-go/internal/codec"
	"github.com/jengzang/gpxscaler-backend-go/internal/models"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/internal/scaler"
	"github.com/jengzang/gpxscaler-backend-go/pkg/response"
)

// UploadHandler accepts route files and stores them for later processing.
type UploadHandler struct {
	uploads  *repository.UploadRepository
	maxBytes int64
}

func NewUploadHandler(uploads *repository.UploadRepository, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxBytes: maxBytes}
}

type uploadedFile struct {
	ID         string  `json:"id"`
	Filename   string  `json:"filename"`
	DistanceKm float64 `json:"distance_km"`
	AscentM    float64 `json:"ascent_m"`
	DescentM   float64 `json:"descent_m"`
	PointCount int     `json:"point_count"`
}

type rejectedFile struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Upload handles POST /api/v1/upload. It takes one or more GPX files in
// the multipart field "files", validates each one, and returns ids plus
// summary metrics for the accepted files. Files that fail to parse are
// reported individually without sinking the rest of the batch.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, "no files provided")
		return
	}

	var accepted []uploadedFile
	var rejected []rejectedFile
	for _, fh := range headers {
		up, err := h.storeOne(fh)
		if err != nil {
			rejected = append(rejected, rejectedFile{Filename: fh.Filename, Error: err.Error()})
			continue
		}
		accepted = append(accepted, uploadedFile{
			ID:         up.ID,
			Filename:   up.Filename,
			DistanceKm: up.DistanceKm,
			AscentM:    up.AscentM,
			DescentM:   up.DescentM,
			PointCount: up.PointCount,
		})
	}

	if len(accepted) == 0 {
		response.BadRequest(c, "no valid gpx files in upload")
		return
	}
	response.Success(c, gin.H{"files": accepted, "rejected": rejected})
}

func (h *UploadHandler) storeOne(fh *multipart.FileHeader) (*models.Upload, error) {
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".gpx") {
		return nil, fmt.Errorf("only .gpx files are accepted")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > h.maxBytes {
		return nil, fmt.Errorf("file exceeds %d byte limit", h.maxBytes)
	}

	points, _, err := codec.ParseGPX(content)
	if err != nil {
		return nil, err
	}
	track, err := scaler.BuildTrack(points)
	if err != nil {
		return nil, err
	}

	up := &models.Upload{
		ID:         uuid.NewString(),
		Filename:   filepath.Base(fh.Filename),
		Content:    content,
		DistanceKm: track.TotalDistance,
		AscentM:    track.TotalAscent,
		DescentM:   track.TotalDescent,
		PointCount: len(track.Points),
		UploadedAt: time.Now().Unix(),
	}
	if err := h.uploads.Create(up); err != nil {
		return nil, err
	}
	return up, nil
}
