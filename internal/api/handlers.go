package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"math"
	"net/http"
	"strconv"
	"time"

	"healeo-sense/internal/auth"
	"healeo-sense/internal/cache"
	"healeo-sense/internal/engine"
	"healeo-sense/internal/models"
	"healeo-sense/internal/telemetry"
)

const maxRequestBodyBytes = 1 << 20

type Cache interface {
	IsRateLimited(ctx context.Context, key string) bool
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type VitalsSource interface {
	GetVitals(ctx context.Context, userID string) (*models.VitalsRecord, error)
}

type ReadingsGenerator interface {
	Generate() engine.VitalReadings
}

type HandlerOptions struct {
	Catalogue        *engine.Catalogue
	Generator        ReadingsGenerator
	CacheTTL         time.Duration
	RateLimitWindow  time.Duration
	UTCOffsetMinutes int
	Now              func() time.Time
}

type Handler struct {
	svc       VitalsSource
	cache     Cache
	generator ReadingsGenerator
	catalogue *engine.Catalogue
	cacheTTL   time.Duration
	retryAfter string
	utcOffset  int
	now        func() time.Time
}

func NewHandler(svc VitalsSource, store Cache, opts HandlerOptions) *Handler {
	if opts.Catalogue == nil {
		opts.Catalogue = engine.DefaultCatalogue()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = 60 * time.Second
	}
	return &Handler{
		svc:        svc,
		cache:      store,
		generator:  opts.Generator,
		catalogue:  opts.Catalogue,
		cacheTTL:   opts.CacheTTL,
		retryAfter: strconv.Itoa(int(math.Ceil(opts.RateLimitWindow.Seconds()))),
		utcOffset:  opts.UTCOffsetMinutes,
		now:        opts.Now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

func (h *Handler) GetCatalogue(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalogue)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", false,
		map[string]any{"method": r.Method, "path": r.URL.Path})
}

// PostRecommendation computes a recommendation for readings supplied by the caller.
func (h *Handler) PostRecommendation(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	preference, err := engine.ParseDietPreference(req.Preference)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false,
			map[string]any{"supported": engine.SupportedDietPreferences()})
		return
	}

	at := h.now()
	if req.Timestamp != nil {
		at = *req.Timestamp
	}
	offset := h.utcOffset
	if req.UTCOffsetMinutes != nil {
		offset = *req.UTCOffsetMinutes
	}

	rec := h.catalogue.Recommend(engine.Request{
		Readings:         req.Readings,
		Preference:       preference,
		At:               at,
		UTCOffsetMinutes: offset,
	})
	telemetry.ObserveRecommendation(rec)

	resp := models.NewRecommendationResponse(rec, models.SourceRequest)
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		resp.UserID = userID
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetRecommendation serves a recommendation for a user's latest readings, cached per meal period
// and preference.
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(clientIP); err == nil {
		clientIP = host
	}

	if h.cache.IsRateLimited(ctx, clientIP) {
		slog.Warn("Rate limit exceeded", "ip", clientIP)
		w.Header().Set("Retry-After", h.retryAfter)
		writeError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded,
			"Too many requests", true, nil)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "Missing user id", false, nil)
		return
	}

	// With auth enabled a token only reads its own subject.
	if subject, ok := auth.UserIDFromContext(ctx); ok && subject != id {
		slog.Warn("Recommendation requested for another user", "subject", subject, "user_id", id)
		writeError(w, r, http.StatusForbidden, ErrCodeForbidden, "Token subject does not match user id", false, nil)
		return
	}

	preference, err := engine.ParseDietPreference(r.URL.Query().Get("preference"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false,
			map[string]any{"supported": engine.SupportedDietPreferences()})
		return
	}

	start := time.Now()
	at := h.now()
	period := engine.ClassifyMealPeriod(at, h.utcOffset)
	cacheKey := cache.RecommendationKey(id, period, preference)

	cachedData, err := h.cache.Get(ctx, cacheKey)
	if err == nil {
		telemetry.CacheResult(true)
		slog.Info("Cache HIT", "user_id", id, "duration", time.Since(start))
		writeJSONBytes(w, http.StatusOK, cachedData)
		return
	}
	telemetry.CacheResult(false)
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("Cache lookup failed", "user_id", id, "error", err)
	}

	readings, source, err := h.readingsFor(ctx, id)
	if err != nil {
		slog.Error("Failed to get vitals", "user_id", id, "error", err)
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Vitals unavailable", true, nil)
		return
	}

	rec := h.catalogue.Recommend(engine.Request{
		Readings:         readings,
		Preference:       preference,
		At:               at,
		UTCOffsetMinutes: h.utcOffset,
	})
	telemetry.ObserveRecommendation(rec)

	resp := models.NewRecommendationResponse(rec, source)
	resp.UserID = id

	responseBytes, err := json.Marshal(resp)
	if err != nil {
		slog.Error("JSON marshal error", "error", err)
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Internal Server Error", false, nil)
		return
	}

	go func() {
		if err := h.cache.Set(context.Background(), cacheKey, responseBytes, h.cacheTTL); err != nil {
			slog.Warn("Cache write failed", "key", cacheKey, "error", err)
		}
	}()

	slog.Info("Request processed", "user_id", id, "meal_period", rec.MealPeriod,
		"preference", preference, "source", source, "duration", time.Since(start))
	writeJSONBytes(w, http.StatusOK, responseBytes)
}

// readingsFor falls back to generated readings when the vitals service cannot answer.
func (h *Handler) readingsFor(ctx context.Context, id string) (engine.VitalReadings, models.ReadingsSource, error) {
	record, err := h.svc.GetVitals(ctx, id)
	if err == nil {
		return record.Readings, models.SourceService, nil
	}
	if h.generator == nil {
		return engine.VitalReadings{}, "", err
	}

	slog.Warn("Vitals fallback", "user_id", id, "error", err)
	telemetry.VitalsFallback()
	return h.generator.Generate(), models.SourceGenerated, nil
}
