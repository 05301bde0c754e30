package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpxscaler-backend-go/internal/config"
	"github.com/jengzang/gpxscaler-backend-go/internal/handler"
	"github.com/jengzang/gpxscaler-backend-go/internal/middleware"
)

// Handlers bundles the route handlers the router wires up.
type Handlers struct {
	Upload   *handler.UploadHandler
	Preview  *handler.PreviewHandler
	Process  *handler.ProcessHandler
	Progress *handler.ProgressHandler
	Download *handler.DownloadHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GPX Scaler API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/upload", middleware.RateLimit(30, time.Minute), h.Upload.Upload)

		api.GET("/preview/:id", h.Preview.Preview)
		api.GET("/preview/:id/scaled", h.Preview.PreviewScaled)

		api.POST("/process", h.Process.Process)

		api.GET("/progress/:session_id", h.Progress.Progress)
		api.GET("/progress/:session_id/stream", h.Progress.Stream)
		api.DELETE("/progress/:session_id", h.Progress.Cancel)

		api.GET("/download/:output_id", h.Download.Download)
		api.POST("/download/batch", h.Download.DownloadBatch)
	}

	return r
}
