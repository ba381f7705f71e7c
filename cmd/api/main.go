package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jayakulan/TrashRoute1/internal/adapters/http"
	natsadapter "github.com/jayakulan/TrashRoute1/internal/adapters/nats"
	"github.com/jayakulan/TrashRoute1/internal/adapters/postgres"
	"github.com/jayakulan/TrashRoute1/internal/adapters/valkey"
	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
	"github.com/jayakulan/TrashRoute1/internal/pkg/config"
	"github.com/jayakulan/TrashRoute1/internal/pkg/logging"
	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
	"github.com/jayakulan/TrashRoute1/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("trashroute-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	// Service region
	region, err := domain.NewServiceRegion(cfg.Region.North, cfg.Region.South, cfg.Region.East, cfg.Region.West)
	if err != nil {
		log.Fatalf("service region: %v", err)
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Periodically export pool stats
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr, "trashroute:")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
	}

	// Repos
	requestRepo := postgres.NewRequestRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)

	// Use cases
	var pub ports.EventPublisher
	if publisher != nil {
		pub = publisher
	}
	requestSvc := usecases.NewRequestService(requestRepo, pub)
	draftSvc := usecases.NewDraftService(region, requestSvc,
		time.Duration(cfg.Pickup.DraftTTLMinutes)*time.Minute)
	dashboardSvc := usecases.NewDashboardService(requestRepo, cfg.Pickup.RevenuePerPickup)
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	categorySvc := usecases.NewCategoryService(categoryRepo, cacheSvc)
	companySvc := usecases.NewCompanyService(companyRepo, cacheSvc)

	deps := &http.Dependencies{
		Requests:   requestSvc,
		Drafts:     draftSvc,
		Dashboards: dashboardSvc,
		Categories: categorySvc,
		Companies:  companySvc,
		Region:     region,
		DB:         db,
		Cache:      cache,
	}
	if publisher != nil {
		deps.NATS = publisher.Conn()
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "TrashRoute API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.trashroute.lk",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
