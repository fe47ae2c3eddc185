// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/prath-way/boitech/internal/model"
)

// RecordFilter defines filtering options for journal record queries.
type RecordFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Symptom   string
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Journal record operations
	SaveRecords(ctx context.Context, records []model.JournalRecord) error
	GetRecords(ctx context.Context, filter RecordFilter) ([]model.JournalRecord, error)
	CountRecords(ctx context.Context) (int, error)

	// Prediction lifecycle
	SavePredictions(ctx context.Context, predictions []model.Prediction) error
	GetPredictions(ctx context.Context) ([]model.Prediction, error)
	GetPredictionsForToday(ctx context.Context) ([]model.Prediction, error)
	GetHighRiskPredictions(ctx context.Context) ([]model.Prediction, error)
	PurgeExpired(ctx context.Context) (int, error)

	// Settings
	GetSettings(ctx context.Context) (model.PredictionSettings, error)
	SaveSettings(ctx context.Context, settings model.PredictionSettings) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// WeatherProvider supplies current conditions and a short-range forecast.
// Implementations must return a distinguishable error, never panic, when the
// location is invalid or the network is unavailable.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (model.WeatherSnapshot, error)
	FetchForecast(ctx context.Context, lat, lon float64) ([]model.WeatherForecastPoint, error)
}

// RecommendationSource answers preventive advice for a symptom label.
// Lookups are case-insensitive and substring-tolerant, with a non-empty
// generic fallback when nothing matches.
type RecommendationSource interface {
	RecommendationsFor(symptom string) []string
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
