package models

import (
	"time"

	"healeo-sense/internal/engine"
)

type ReadingsSource string

const (
	SourceRequest   ReadingsSource = "request"
	SourceService   ReadingsSource = "vitals-service"
	SourceGenerated ReadingsSource = "generated"
)

// VitalsRecord is what the vitals service returns for a user.
type VitalsRecord struct {
	ID         string               `json:"id"`
	Readings   engine.VitalReadings `json:"readings"`
	MeasuredAt time.Time            `json:"measured_at"`
}

type RecommendationRequest struct {
	Readings         engine.VitalReadings `json:"readings"`
	Preference       string               `json:"preference"`
	Timestamp        *time.Time           `json:"timestamp,omitempty"`
	UTCOffsetMinutes *int                 `json:"utc_offset_minutes,omitempty"`
}

type RecommendationResponse struct {
	UserID          string                `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	MealPeriod      engine.MealPeriod     `json:"meal_period" yaml:"meal_period"`
	Preference      engine.DietPreference `json:"preference" yaml:"preference"`
	Readings        engine.VitalReadings  `json:"readings" yaml:"readings"`
	Menu            engine.MenuSuggestion `json:"menu" yaml:"menu"`
	Rows            []engine.MenuRow      `json:"rows" yaml:"rows"`
	HydrationLitres float64               `json:"hydration_litres" yaml:"hydration_litres"`
	GeneratedAt     time.Time             `json:"generated_at" yaml:"generated_at"`
	Source          ReadingsSource        `json:"source" yaml:"source"`
}

func NewRecommendationResponse(rec engine.Recommendation, source ReadingsSource) RecommendationResponse {
	return RecommendationResponse{
		MealPeriod:      rec.MealPeriod,
		Preference:      rec.Preference,
		Readings:        rec.Readings,
		Menu:            rec.Menu,
		Rows:            rec.Menu.Rows(engine.Placeholder),
		HydrationLitres: rec.HydrationLitres,
		GeneratedAt:     rec.At.UTC(),
		Source:          source,
	}
}

type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
