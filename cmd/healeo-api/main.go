package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healeo-sense/internal/api"
	"healeo-sense/internal/cache"
	"healeo-sense/internal/config"
	"healeo-sense/internal/engine"
	"healeo-sense/internal/logging"
	"healeo-sense/internal/services"
	"healeo-sense/internal/vitals"
)

func main() {
	cfg := config.NewConfig()
	logging.SetDefault(os.Stdout, "healeo-api", cfg.LogLevel)

	slog.Info("Starting HealeoSense API", "port", cfg.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogue := engine.DefaultCatalogue()
	if cfg.CataloguePath != "" {
		c, err := engine.LoadCatalogueFile(cfg.CataloguePath)
		if err != nil {
			slog.Error("Failed to load catalogue", "path", cfg.CataloguePath, "error", err)
			os.Exit(1)
		}
		catalogue = c
		slog.Info("Loaded catalogue", "path", cfg.CataloguePath, "periods", len(c.Periods))
	}

	redisClient, err := cache.NewClient(ctx, cache.Options{
		Addr:            cfg.RedisAddr,
		RateLimit:       cfg.RateLimitRequests,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)

	serviceClient := services.NewServiceClient(cfg)

	handler := api.NewHandler(serviceClient, redisClient, api.HandlerOptions{
		Catalogue:        catalogue,
		Generator:        vitals.NewGenerator(0),
		CacheTTL:         cfg.CacheTTL,
		RateLimitWindow:  cfg.RateLimitWindow,
		UTCOffsetMinutes: cfg.UTCOffsetMinutes,
	})

	server := api.NewServer(cfg, handler)
	if err := server.Run(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
