package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/photo-compass/internal/config"
	httpDelivery "github.com/photo-compass/internal/delivery/http"
	"github.com/photo-compass/internal/delivery/http/handler"
	"github.com/photo-compass/internal/exifscan"
	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/pkg/logger"
	"github.com/photo-compass/internal/repository/memory"
	"github.com/photo-compass/internal/usecase"
	"github.com/photo-compass/internal/worker"
	scanWorker "github.com/photo-compass/internal/worker/scan"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Photo Compass")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("photos_dir", cfg.Photos.Dir),
	)

	// 3. Initial directory scan
	scanner := exifscan.NewScanner(log)

	scanCtx, scanCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	records, err := scanner.Scan(scanCtx, cfg.Photos.Dir)
	scanCancel()
	if err != nil {
		log.Fatal("Failed to scan photos directory", zap.Error(err))
	}
	if len(records) == 0 {
		log.Fatal("Startup scan found no usable photos",
			zap.Error(errors.ErrNoGeotaggedPhotos),
			zap.String("dir", cfg.Photos.Dir))
	}
	log.Info("Photo collection indexed", zap.Int("photos", len(records)))

	// 4. Initialize repository
	photoRepo := memory.NewPhotoRepository(records)

	// 5. Initialize use cases
	selectionUC := usecase.NewSelectionUseCase(photoRepo, log)
	photoUC := usecase.NewPhotoUseCase(photoRepo, scanner, log, cfg.Photos.Dir)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP handlers
	selectionHandler := handler.NewSelectionHandler(selectionUC, log)
	photoHandler := handler.NewPhotoHandler(photoUC, log)

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, selectionHandler, photoHandler, selectionUC)

	log.Info("HTTP server initialized")

	// 8. Start background rescan worker if enabled
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var manager *worker.Manager
	if cfg.Worker.Enabled {
		manager = worker.NewManager(log)
		manager.Register(scanWorker.NewRescanWorker(photoUC, cfg.Worker.RescanInterval, log))
		if err := manager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if manager != nil {
		if err := manager.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
