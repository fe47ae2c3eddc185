package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/prath-way/boitech/internal/config"
	"github.com/prath-way/boitech/internal/engine"
	"github.com/prath-way/boitech/internal/model"
	"github.com/prath-way/boitech/internal/recommend"
	"github.com/prath-way/boitech/internal/service"
	"github.com/prath-way/boitech/internal/storage"
	"github.com/prath-way/boitech/internal/weather"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/boitech/boitech.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newWeatherProvider builds the Open-Meteo client from config, falling back
// to the public endpoint and default timeout.
func newWeatherProvider() service.WeatherProvider {
	baseURL := viper.GetString("weather.base_url")
	if baseURL == "" {
		baseURL = weather.DefaultBaseURL
	}

	timeout := viper.GetDuration("weather.timeout")
	if timeout <= 0 {
		timeout = weather.DefaultTimeout
	}

	return weather.NewOpenMeteoClientWithOptions(baseURL, timeout)
}

// configuredLocation reads the default location from config. Returns nil when
// no coordinates are configured.
func configuredLocation() *model.Location {
	if !viper.IsSet("location.lat") || !viper.IsSet("location.lon") {
		return nil
	}

	return &model.Location{
		Label: viper.GetString("location.label"),
		Lat:   viper.GetFloat64("location.lat"),
		Lon:   viper.GetFloat64("location.lon"),
	}
}

// initEngine wires the prediction engine with storage, weather, and
// recommendations.
func initEngine(store service.Storage) *engine.Engine {
	return engine.NewWithConfig(store, newWeatherProvider(), recommend.NewLookup(), engine.Config{
		DefaultLocation: configuredLocation(),
		WeatherTimeout:  viper.GetDuration("weather.timeout"),
	})
}

// parseDate parses a YYYY-MM-DD argument into a midnight-UTC date.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return parsed, nil
}
