package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"healeo-sense/internal/engine"
)

var (
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healeo_recommendations_total",
			Help: "Recommendations served by meal period and diet preference",
		},
		[]string{"meal_period", "preference"},
	)

	hydrationTarget = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "healeo_hydration_target_litres",
			Help:    "Recommended daily water intake",
			Buckets: []float64{1.5, 2.0, 2.5, 3.0, 3.5},
		},
	)

	cacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healeo_cache_requests_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)

	vitalsFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healeo_vitals_fallback_total",
			Help: "Requests served with locally generated readings because the vitals service failed",
		},
	)
)

func ObserveRecommendation(rec engine.Recommendation) {
	recommendationsTotal.WithLabelValues(rec.MealPeriod.String(), rec.Preference.String()).Inc()
	hydrationTarget.Observe(rec.HydrationLitres)
}

func CacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestsTotal.WithLabelValues(result).Inc()
}

func VitalsFallback() {
	vitalsFallbackTotal.Inc()
}
