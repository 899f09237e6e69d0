package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/config"
	"github.com/photo-compass/internal/delivery/http/handler"
	"github.com/photo-compass/internal/delivery/http/middleware"
	"github.com/photo-compass/internal/pkg/metrics"
	"github.com/photo-compass/internal/worker/selection"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	selectionHandler *handler.SelectionHandler
	photoHandler     *handler.PhotoHandler
	selectionEngine  selection.Engine
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	selectionHandler *handler.SelectionHandler,
	photoHandler *handler.PhotoHandler,
	selectionEngine selection.Engine,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Photo Compass",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		selectionHandler: selectionHandler,
		photoHandler:     photoHandler,
		selectionEngine:  selectionEngine,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(metrics.Middleware())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Prometheus metrics
	s.app.Get("/metrics", metrics.Handler())

	// Встроенная страница с картой
	s.app.Static("/", "./static")

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Selection routes
	api.Get("/selection", s.selectionHandler.GetSelection)

	// Photo index routes
	api.Get("/photos", s.photoHandler.ListPhotos)
	api.Get("/photos/:id/image", s.photoHandler.GetPhotoImage)
	api.Post("/photos/rescan", s.photoHandler.Rescan)

	// WebSocket-канал точек обзора для страницы с картой
	s.app.Use("/ws/viewpoint", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/viewpoint", websocket.New(handler.ViewpointWSHandler(s.selectionEngine, s.logger)))
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
