// Package engine implements the core prediction engine that turns journal
// history and forecast weather into risk-scored predictions.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prath-way/boitech/internal/common"
	"github.com/prath-way/boitech/internal/model"
	"github.com/prath-way/boitech/internal/pattern"
	"github.com/prath-way/boitech/internal/scoring"
	"github.com/prath-way/boitech/internal/service"
	"github.com/prath-way/boitech/internal/weather"
)

// Trigger impact weights from the reference scoring model.
const (
	patternTriggerImpact = 0.6
	weatherTriggerImpact = 0.4
	cyclicTriggerImpact  = 0.7
)

// maxRecommendations caps the advice attached to one prediction.
const maxRecommendations = 4

// Reasons attached to a generation result so an empty prediction list is
// explainable to the caller.
const (
	ReasonOK               = "ok"
	ReasonDisabled         = "predictions disabled"
	ReasonInsufficientData = "insufficient data"
	ReasonNoPatterns       = "no patterns found"
	ReasonError            = "generation failed"
)

// Result is the outcome of one generation run.
type Result struct {
	Reason      string
	Predictions []model.Prediction
}

// Engine orchestrates pattern detection, weather correlation, scoring, and
// persistence for one user session.
type Engine struct {
	storage         service.Storage
	weather         service.WeatherProvider
	recommender     service.RecommendationSource
	detector        *pattern.Detector
	nowFunc         func() time.Time
	defaultLocation *model.Location
	weatherTimeout  time.Duration
}

// Config holds configuration options for the prediction engine.
type Config struct {
	DefaultLocation *model.Location
	WeatherTimeout  time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		WeatherTimeout: 8 * time.Second,
	}
}

// New creates a new prediction engine with the given dependencies. The
// weather provider may be nil when weather integration is never used.
func New(storage service.Storage, provider service.WeatherProvider, recommender service.RecommendationSource) *Engine {
	return NewWithConfig(storage, provider, recommender, DefaultConfig())
}

// NewWithConfig creates a new prediction engine with custom configuration.
func NewWithConfig(storage service.Storage, provider service.WeatherProvider, recommender service.RecommendationSource, config Config) *Engine {
	timeout := config.WeatherTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().WeatherTimeout
	}
	return &Engine{
		storage:         storage,
		weather:         provider,
		recommender:     recommender,
		detector:        pattern.NewDetector(),
		nowFunc:         time.Now,
		defaultLocation: config.DefaultLocation,
		weatherTimeout:  timeout,
	}
}

// SetNowFunc overrides the engine's clock for deterministic tests.
func (e *Engine) SetNowFunc(now func() time.Time) {
	if now != nil {
		e.nowFunc = now
	}
}

// Generate runs one prediction pass over the given records and settings,
// persists the resulting set, and returns it. Recoverable conditions (too
// little data, weather failures, malformed records) degrade gracefully; only
// a store write failure surfaces as an error, and even then the computed
// predictions are returned alongside it.
func (e *Engine) Generate(ctx context.Context, records []model.JournalRecord, settings model.PredictionSettings) (result Result, err error) {
	// Prediction generation must never crash the caller.
	defer func() {
		if r := recover(); r != nil {
			common.LogError(fmt.Errorf("panic: %v", r), "prediction generation aborted", nil)
			result = Result{Reason: ReasonError}
			err = nil
		}
	}()

	settings.Normalize()

	if !settings.Enabled {
		return Result{Reason: ReasonDisabled}, nil
	}

	valid := e.filterMalformed(records)
	if len(valid) < pattern.MinRecords {
		slog.Info("Not enough journal data for predictions",
			"records", len(valid), "required", pattern.MinRecords)
		return Result{Reason: ReasonInsufficientData}, nil
	}

	// Newest first; the detector and recency scoring both key off the most
	// recent occurrences.
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Date.After(valid[j].Date)
	})

	patterns := e.detector.Detect(valid)
	if len(patterns) == 0 {
		slog.Info("No recurring patterns detected", "records", len(valid))
		if saveErr := e.persist(ctx, nil); saveErr != nil {
			return Result{Reason: ReasonNoPatterns}, saveErr
		}
		return Result{Reason: ReasonNoPatterns}, nil
	}

	triggers := e.correlateWeather(ctx, settings, patterns)

	today := model.DateOnly(e.nowFunc())
	predictions := e.buildPredictions(patterns, triggers, settings, len(valid), today)

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].DaysAhead != predictions[j].DaysAhead {
			return predictions[i].DaysAhead < predictions[j].DaysAhead
		}
		return predictions[i].Confidence > predictions[j].Confidence
	})

	common.LogInfo("Generated predictions", common.Fields{
		"patterns":    len(patterns),
		"predictions": len(predictions),
	})

	result = Result{Reason: ReasonOK, Predictions: predictions}
	if len(predictions) == 0 {
		result.Reason = ReasonNoPatterns
	}

	if saveErr := e.persist(ctx, predictions); saveErr != nil {
		// The caller still gets the in-memory result, clearly flagged.
		return result, saveErr
	}
	return result, nil
}

// filterMalformed drops records the engine cannot use. Individually broken
// records are skipped, surfaced once as a warning rather than per record.
func (e *Engine) filterMalformed(records []model.JournalRecord) []model.JournalRecord {
	valid := make([]model.JournalRecord, 0, len(records))
	skipped := 0
	for _, record := range records {
		if record.Validate() != nil {
			skipped++
			continue
		}
		valid = append(valid, record)
	}
	if skipped > 0 {
		common.LogWarn("Skipped malformed journal records", common.Fields{"count": skipped})
	}
	return valid
}

// correlateWeather fetches tomorrow's weather deltas and classifies which
// detected symptoms look weather-sensitive. Any failure is absorbed: weather
// is enrichment, never a hard dependency.
func (e *Engine) correlateWeather(ctx context.Context, settings model.PredictionSettings, patterns []model.PatternMatch) map[string]model.TriggerMatch {
	if !settings.WeatherIntegration || e.weather == nil {
		return nil
	}

	location := settings.Location
	if location == nil {
		location = e.defaultLocation
	}
	if location == nil {
		slog.Debug("Weather integration enabled but no location configured")
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.weatherTimeout)
	defer cancel()

	var (
		current  model.WeatherSnapshot
		forecast []model.WeatherForecastPoint
	)
	err := common.WithRetry(fetchCtx, func() error {
		var fetchErr error
		current, fetchErr = e.weather.FetchCurrent(fetchCtx, location.Lat, location.Lon)
		if fetchErr != nil {
			return fetchErr
		}
		forecast, fetchErr = e.weather.FetchForecast(fetchCtx, location.Lat, location.Lon)
		return fetchErr
	}, service.RetryOptions{MaxAttempts: 2, InitialDelay: 200 * time.Millisecond})
	if err != nil {
		common.LogWarn("Weather fetch failed, continuing without weather triggers", common.Fields{"error": err})
		return nil
	}

	symptoms := make([]string, 0, len(patterns))
	seen := make(map[string]bool)
	for _, p := range patterns {
		if !seen[p.Symptom] {
			seen[p.Symptom] = true
			symptoms = append(symptoms, p.Symptom)
		}
	}

	matches := weather.Correlate(current, forecast, symptoms)
	bySymptom := make(map[string]model.TriggerMatch, len(matches))
	for _, match := range matches {
		bySymptom[match.Symptom] = match
	}
	return bySymptom
}

// buildPredictions turns detected patterns into scored predictions. Weekly
// patterns take priority: a symptom's monthly pattern is only considered when
// no weekly pattern exists for it.
func (e *Engine) buildPredictions(patterns []model.PatternMatch, triggers map[string]model.TriggerMatch, settings model.PredictionSettings, totalEntries int, today time.Time) []model.Prediction {
	hasWeekly := make(map[string]bool)
	for _, p := range patterns {
		if p.IsWeekly() {
			hasWeekly[p.Symptom] = true
		}
	}

	var predictions []model.Prediction
	for _, p := range patterns {
		var candidate *model.Prediction
		switch {
		case p.IsWeekly():
			candidate = e.weeklyCandidate(p, triggers, settings, totalEntries, today)
		case p.IsMonthly() && !hasWeekly[p.Symptom]:
			candidate = e.monthlyCandidate(p, settings, totalEntries, today)
		}
		if candidate != nil {
			predictions = append(predictions, *candidate)
		}
	}
	return predictions
}

// weeklyCandidate scores a weekday pattern against the prediction window.
func (e *Engine) weeklyCandidate(p model.PatternMatch, triggers map[string]model.TriggerMatch, settings model.PredictionSettings, totalEntries int, today time.Time) *model.Prediction {
	daysUntil := (int(*p.DayOfWeek) - int(today.Weekday()) + 7) % 7
	if daysUntil == 0 {
		// The weekday is today; the next predictable occurrence is a week out.
		daysUntil = 7
	}
	if daysUntil > settings.DaysToPredict {
		return nil
	}

	trigger, ok := triggers[p.Symptom]
	weatherMatch := ok && trigger.WeatherSensitive

	confidence := scoring.Confidence(p.OccurrenceCount, totalEntries, weatherMatch, daysBetween(p.LastOccurrence, today))
	if confidence < settings.MinConfidence {
		return nil
	}

	likelihood := scoring.Likelihood(confidence)
	weekday := p.DayOfWeek.String()

	predictionTriggers := []model.Trigger{{
		Type:        model.TriggerPattern,
		Factor:      "Weekly pattern",
		Impact:      patternTriggerImpact,
		Description: fmt.Sprintf("%s has recurred on %ss", p.Symptom, weekday),
	}}
	if weatherMatch {
		predictionTriggers = append(predictionTriggers, model.Trigger{
			Type:        model.TriggerWeather,
			Factor:      strings.Join(trigger.TriggerFactors, ", "),
			Impact:      weatherTriggerImpact,
			Description: "Forecast weather matches known triggers for this symptom",
		})
	}

	prediction := e.newPrediction(p, confidence, likelihood, daysUntil, today, predictionTriggers)
	prediction.Reasoning = fmt.Sprintf("%s has occurred %d times, most often on %ss.",
		p.Symptom, p.OccurrenceCount, weekday)
	return prediction
}

// monthlyCandidate scores a day-of-month pattern. Monthly patterns are scored
// without weather correlation; the correlator is keyed to weekday proximity.
func (e *Engine) monthlyCandidate(p model.PatternMatch, settings model.PredictionSettings, totalEntries int, today time.Time) *model.Prediction {
	daysUntil := daysBetween(today, nextDayOfMonth(today, *p.DayOfMonth))
	if daysUntil <= 0 || daysUntil > settings.DaysToPredict {
		return nil
	}

	confidence := scoring.Confidence(p.OccurrenceCount, totalEntries, false, daysBetween(p.LastOccurrence, today))
	if confidence < settings.MinConfidence {
		return nil
	}

	likelihood := scoring.Likelihood(confidence)
	predictionTriggers := []model.Trigger{{
		Type:        model.TriggerCyclic,
		Factor:      "Monthly cycle",
		Impact:      cyclicTriggerImpact,
		Description: fmt.Sprintf("%s has clustered around day %d of the month", p.Symptom, *p.DayOfMonth),
	}}

	prediction := e.newPrediction(p, confidence, likelihood, daysUntil, today, predictionTriggers)
	prediction.Reasoning = fmt.Sprintf("%s has occurred %d times, clustered around day %d of the month.",
		p.Symptom, p.OccurrenceCount, *p.DayOfMonth)
	return prediction
}

func (e *Engine) newPrediction(p model.PatternMatch, confidence float64, likelihood, daysUntil int, today time.Time, triggers []model.Trigger) *model.Prediction {
	recommendations := e.recommendationsFor(p.Symptom)

	return &model.Prediction{
		ID:              uuid.NewString(),
		Symptom:         p.Symptom,
		RiskLevel:       scoring.ClassifyRisk(confidence, likelihood),
		Confidence:      confidence,
		DaysAhead:       daysUntil,
		PredictedDate:   today.AddDate(0, 0, daysUntil),
		Likelihood:      likelihood,
		Triggers:        triggers,
		Recommendations: recommendations,
		CreatedAt:       e.nowFunc().UTC(),
	}
}

func (e *Engine) recommendationsFor(symptom string) []string {
	if e.recommender == nil {
		return nil
	}
	recommendations := e.recommender.RecommendationsFor(symptom)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// persist overwrites the stored prediction set with this run's output.
func (e *Engine) persist(ctx context.Context, predictions []model.Prediction) error {
	if predictions == nil {
		predictions = []model.Prediction{}
	}
	if err := e.storage.SavePredictions(ctx, predictions); err != nil {
		return fmt.Errorf("failed to persist predictions: %w", err)
	}
	return nil
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(model.DateOnly(b).Sub(model.DateOnly(a)).Hours() / 24)
}

// nextDayOfMonth finds the next occurrence of the given day-of-month strictly
// after today, rolling into the following month when the day has passed.
// Months too short for the target day roll forward naturally.
func nextDayOfMonth(today time.Time, day int) time.Time {
	candidate := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)
	if !candidate.After(today) {
		candidate = time.Date(today.Year(), today.Month()+1, day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
