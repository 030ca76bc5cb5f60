package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healeo-sense/internal/config"
	"healeo-sense/internal/logging"
	"healeo-sense/internal/models"
	"healeo-sense/internal/telemetry"
	"healeo-sense/internal/vitals"
)

// Test-mode vitals source: every request returns freshly generated readings.
func main() {
	cfg := config.NewConfig()
	logging.SetDefault(os.Stdout, "vitals-service", cfg.LogLevel)

	generator := vitals.NewGenerator(0)
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /vitals/{id}", telemetry.Middleware("/vitals/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		record := models.VitalsRecord{
			ID:         id,
			Readings:   generator.Generate(),
			MeasuredAt: time.Now().UTC(),
		}
		slog.Debug("Generated vitals", "user_id", id, "readings", record.Readings)

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(record); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))

	addr := fmt.Sprintf(":%s", cfg.VitalsPort)
	slog.Info("Vitals service listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
}
