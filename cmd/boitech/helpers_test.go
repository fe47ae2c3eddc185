package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prath-way/boitech/internal/common"
	"github.com/prath-way/boitech/internal/engine"
	"github.com/prath-way/boitech/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError bool
		expected      time.Time
	}{
		{
			name:     "valid date",
			input:    "2024-03-11",
			expected: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "wrong format",
			input:         "11/03/2024",
			expectedError: true,
		},
		{
			name:          "not a date",
			input:         "yesterday",
			expectedError: true,
		},
		{
			name:          "empty",
			input:         "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDate(tt.input)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestApplySetting(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		value         string
		expectedError string
		check         func(t *testing.T, s model.PredictionSettings)
	}{
		{
			name:  "enable predictions",
			key:   "enabled",
			value: "true",
			check: func(t *testing.T, s model.PredictionSettings) {
				t.Helper()
				assert.True(t, s.Enabled)
			},
		},
		{
			name:  "disable weather",
			key:   "weather",
			value: "false",
			check: func(t *testing.T, s model.PredictionSettings) {
				t.Helper()
				assert.False(t, s.WeatherIntegration)
			},
		},
		{
			name:  "set confidence threshold",
			key:   "min-confidence",
			value: "0.75",
			check: func(t *testing.T, s model.PredictionSettings) {
				t.Helper()
				assert.InDelta(t, 0.75, s.MinConfidence, 0.0001)
			},
		},
		{
			name:  "set prediction window",
			key:   "days-to-predict",
			value: "5",
			check: func(t *testing.T, s model.PredictionSettings) {
				t.Helper()
				assert.Equal(t, 5, s.DaysToPredict)
			},
		},
		{
			name:          "bad boolean",
			key:           "enabled",
			value:         "maybe",
			expectedError: "invalid boolean",
		},
		{
			name:          "bad number",
			key:           "min-confidence",
			value:         "high",
			expectedError: "invalid number",
		},
		{
			name:          "unknown key",
			key:           "retention",
			value:         "30",
			expectedError: "unknown setting",
		},
		{
			name:          "location without coordinates",
			key:           "location",
			expectedError: "requires --lat and --lon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := settingsSetCmd()
			settings := model.DefaultPredictionSettings()

			err := applySetting(cmd, &settings, tt.key, tt.value)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				require.NoError(t, err)
				tt.check(t, settings)
			}
		})
	}
}

func TestApplySettingLocation(t *testing.T) {
	cmd := settingsSetCmd()
	require.NoError(t, cmd.Flags().Set("lat", "52.52"))
	require.NoError(t, cmd.Flags().Set("lon", "13.405"))
	require.NoError(t, cmd.Flags().Set("label", "Berlin"))

	settings := model.DefaultPredictionSettings()
	require.NoError(t, applySetting(cmd, &settings, "location", ""))

	require.NotNil(t, settings.Location)
	assert.Equal(t, "Berlin", settings.Location.Label)
	assert.InDelta(t, 52.52, settings.Location.Lat, 0.0001)
	assert.InDelta(t, 13.405, settings.Location.Lon, 0.0001)
}

func TestGenerateOutcome(t *testing.T) {
	disabled := generateOutcome(engine.ReasonDisabled, 0)
	require.Error(t, disabled)
	assert.ErrorIs(t, disabled, common.ErrPredictionDisabled)
	assert.Contains(t, disabled.Error(), "settings set enabled true")

	insufficient := generateOutcome(engine.ReasonInsufficientData, 4)
	require.Error(t, insufficient)
	assert.ErrorIs(t, insufficient, common.ErrInsufficientData)
	assert.Contains(t, insufficient.Error(), "4 logged")

	var userErr *common.UserError
	assert.ErrorAs(t, disabled, &userErr)
	assert.ErrorAs(t, insufficient, &userErr)

	failed := generateOutcome(engine.ReasonError, 0)
	require.Error(t, failed)
	assert.NotErrorIs(t, failed, common.ErrPredictionDisabled)
}

func TestFormatDaysAhead(t *testing.T) {
	assert.Equal(t, "today", formatDaysAhead(0))
	assert.Equal(t, "1 day", formatDaysAhead(1))
	assert.Equal(t, "3 days", formatDaysAhead(3))
}

func TestFormatTriggers(t *testing.T) {
	assert.Empty(t, formatTriggers(nil))

	triggers := []model.Trigger{
		{Type: model.TriggerPattern, Factor: "recurring Monday"},
		{Type: model.TriggerWeather, Factor: "pressure drop"},
	}
	assert.Equal(t, "recurring Monday, pressure drop", formatTriggers(triggers))
}
