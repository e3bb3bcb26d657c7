package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"streamx-recommendation-service/internal/config"
	"streamx-recommendation-service/internal/database"
	"streamx-recommendation-service/internal/handler"
	"streamx-recommendation-service/internal/middleware"
	"streamx-recommendation-service/internal/repository"
	"streamx-recommendation-service/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Initialize layers
	contentRepo := repository.NewContentRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	recSvc := service.NewRecommendationService(contentRepo, prefRepo, rdb)
	prefSvc := service.NewPreferenceService(prefRepo, rdb)
	contentSvc := service.NewContentService(contentRepo, rdb)

	recHandler := handler.NewRecommendationHandler(recSvc)
	prefHandler := handler.NewPreferenceHandler(prefSvc)
	contentHandler := handler.NewContentHandler(contentSvc)

	// Load swagger spec
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger spec not found, swagger UI will be unavailable", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "streamx-recommendation-service",
		ServerHeader: "streamx-recommendation-service",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.AuthMiddleware("/health", "/swagger"))
	app.Use(middleware.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow).Handler())

	// Swagger
	if swaggerYAML != nil {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/health", recHandler.Health)

	api := app.Group("/api/v1")

	api.Get("/content", contentHandler.ListContent)
	api.Get("/content/featured", contentHandler.GetFeaturedContent)
	api.Get("/content/trending", recHandler.GetTrendingContent)
	api.Post("/content/tags", recHandler.GetContentTags)
	api.Get("/content/:id", contentHandler.GetContent)
	api.Get("/content/:id/episodes", contentHandler.GetEpisodes)
	api.Get("/content/:id/similar", recHandler.GetSimilarContent)
	api.Post("/content/:id/views", contentHandler.RecordView)

	api.Get("/users/:id/recommendations", recHandler.GetRecommendations)
	api.Post("/users/:id/watch", prefHandler.RecordWatch)
	api.Get("/users/:id/preferences", prefHandler.GetPreference)
	api.Put("/users/:id/preferences", prefHandler.SetPreference)
	api.Get("/users/:id/history", prefHandler.GetWatchHistory)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("streamx-recommendation-service starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down streamx-recommendation-service")
	_ = app.Shutdown()
}
