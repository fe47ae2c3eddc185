package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prath-way/boitech/internal/model"
)

// GetSettings returns the saved prediction settings, or the documented
// defaults when the user has never saved any.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.PredictionSettings, error) {
	if err := validateContext(ctx); err != nil {
		return model.PredictionSettings{}, err
	}

	query := `
		SELECT enabled, notifications_enabled, weather_integration,
			min_confidence, days_to_predict, location
		FROM prediction_settings
		WHERE id = 1`

	var (
		settings     model.PredictionSettings
		locationJSON sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.Enabled, &settings.NotificationsEnabled, &settings.WeatherIntegration,
		&settings.MinConfidence, &settings.DaysToPredict, &locationJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultPredictionSettings(), nil
	}
	if err != nil {
		return model.PredictionSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if locationJSON.Valid && locationJSON.String != "" {
		var location model.Location
		if err := json.Unmarshal([]byte(locationJSON.String), &location); err != nil {
			return model.PredictionSettings{}, fmt.Errorf("failed to unmarshal location: %w", err)
		}
		settings.Location = &location
	}

	return settings, nil
}

// SaveSettings persists the prediction settings, replacing any previous row.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.PredictionSettings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	var locationJSON *string
	if settings.Location != nil {
		data, err := json.Marshal(settings.Location)
		if err != nil {
			return fmt.Errorf("failed to marshal location: %w", err)
		}
		str := string(data)
		locationJSON = &str
	}

	query := `
		INSERT INTO prediction_settings (
			id, enabled, notifications_enabled, weather_integration,
			min_confidence, days_to_predict, location, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			enabled = excluded.enabled,
			notifications_enabled = excluded.notifications_enabled,
			weather_integration = excluded.weather_integration,
			min_confidence = excluded.min_confidence,
			days_to_predict = excluded.days_to_predict,
			location = excluded.location,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query,
		settings.Enabled, settings.NotificationsEnabled, settings.WeatherIntegration,
		settings.MinConfidence, settings.DaysToPredict, locationJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
