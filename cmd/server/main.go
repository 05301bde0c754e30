package main

import (
	"log"

	"github.com/jengzang/gpxscaler-backend-go/internal/api"
	"github.com/jengzang/gpxscaler-backend-go/internal/config"
	"github.com/jengzang/gpxscaler-backend-go/internal/database"
	"github.com/jengzang/gpxscaler-backend-go/internal/elevation"
	"github.com/jengzang/gpxscaler-backend-go/internal/handler"
	"github.com/jengzang/gpxscaler-backend-go/internal/repository"
	"github.com/jengzang/gpxscaler-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	uploads := repository.NewUploadRepository(database.GetDB())
	outputs := repository.NewOutputRepository(database.GetDB())

	scaleService := service.NewScaleService(uploads)
	batchService := service.NewBatchService(uploads, outputs)
	cleanup := service.NewCleanupService(uploads, outputs, batchService, cfg.CleanupTTL)
	cleanup.Start()
	defer cleanup.Stop()

	elevClient := elevation.NewClient()

	router := api.SetupRouter(cfg, api.Handlers{
		Upload:   handler.NewUploadHandler(uploads, cfg.MaxUploadBytes),
		Preview:  handler.NewPreviewHandler(scaleService, cfg),
		Process:  handler.NewProcessHandler(batchService, uploads, elevClient, cfg),
		Progress: handler.NewProgressHandler(batchService),
		Download: handler.NewDownloadHandler(outputs),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
