package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"healeo-sense/internal/auth"
	"healeo-sense/internal/config"
	"healeo-sense/internal/telemetry"
)

const (
	routeCatalogue       = "/api/catalogue"
	routeRecommendations = "/api/recommendations"
	routeRecommendation  = "/api/recommendations/{id}"
)

type Server struct {
	handler         *Handler
	auth            *auth.Middleware
	limiter         *rate.Limiter
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, handler *Handler) *Server {
	limit := rate.Limit(cfg.GlobalRateLimit)
	if cfg.GlobalRateLimit <= 0 {
		limit = rate.Inf
	}

	s := &Server{
		handler:         handler,
		auth:            auth.NewMiddleware(cfg.JWTSecret, writeUnauthorized),
		limiter:         rate.NewLimiter(limit, max(1, int(2*cfg.GlobalRateLimit))),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET "+routeCatalogue, s.wrap(routeCatalogue, s.handler.GetCatalogue, false))
	mux.HandleFunc("POST "+routeRecommendations, s.wrap(routeRecommendations, s.handler.PostRecommendation, true))
	mux.HandleFunc("GET "+routeRecommendation, s.wrap(routeRecommendation, s.handler.GetRecommendation, true))

	mux.HandleFunc("/", s.wrap("/", s.handler.NotFound, false))

	return mux
}

func (s *Server) wrap(route string, h http.HandlerFunc, protected bool) http.HandlerFunc {
	if protected {
		h = s.auth.ValidateToken(h)
	}
	return telemetry.Middleware(route,
		requestIDMiddleware(
			panicRecoveryMiddleware(
				rateLimitMiddleware(s.limiter, h),
			),
		),
	)
}

// Run serves until ctx is cancelled, then drains connections for up to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	if !s.auth.Enabled() {
		slog.Warn("JWT_SECRET not set, recommendation endpoints are unauthenticated")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
