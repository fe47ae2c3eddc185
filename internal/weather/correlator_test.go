package weather

import (
	"testing"

	"github.com/prath-way/boitech/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(tempC, humidityPct, pressureHPa float64) model.WeatherSnapshot {
	return model.WeatherSnapshot{
		TemperatureC: tempC,
		HumidityPct:  humidityPct,
		PressureHPa:  pressureHPa,
	}
}

func forecastPoint(daysAhead int, tempC, humidityPct, pressureHPa float64) model.WeatherForecastPoint {
	return model.WeatherForecastPoint{
		WeatherSnapshot: snapshot(tempC, humidityPct, pressureHPa),
		DaysAhead:       daysAhead,
	}
}

func TestComputeDeltas(t *testing.T) {
	current := snapshot(20, 60, 1015)
	forecast := []model.WeatherForecastPoint{
		forecastPoint(0, 20, 60, 1015),
		forecastPoint(1, 14, 85, 1008),
		forecastPoint(2, 25, 40, 1020),
	}

	deltas := ComputeDeltas(current, forecast)
	assert.InDelta(t, 7, deltas.PressureDrop, 1e-9)
	assert.InDelta(t, -6, deltas.TemperatureChange, 1e-9)
	assert.InDelta(t, 25, deltas.HumidityChange, 1e-9)
}

func TestComputeDeltas_NoTomorrowPoint(t *testing.T) {
	current := snapshot(20, 60, 1015)
	forecast := []model.WeatherForecastPoint{
		forecastPoint(0, 20, 60, 1015),
		forecastPoint(3, 5, 90, 990),
	}

	assert.Equal(t, Deltas{}, ComputeDeltas(current, forecast))
}

func TestCorrelate(t *testing.T) {
	tests := []struct {
		name          string
		current       model.WeatherSnapshot
		tomorrow      model.WeatherForecastPoint
		symptoms      []string
		wantFactors   map[string][]string
		wantSensitive map[string]bool
	}{
		{
			name:     "pressure drop flags headache class only",
			current:  snapshot(20, 60, 1015),
			tomorrow: forecastPoint(1, 21, 62, 1008),
			symptoms: []string{"Migraine", "Fatigue"},
			wantFactors: map[string][]string{
				"Migraine": {FactorPressureDrop},
				"Fatigue":  nil,
			},
			wantSensitive: map[string]bool{"Migraine": true, "Fatigue": false},
		},
		{
			name:     "temperature swing flags every symptom",
			current:  snapshot(5, 60, 1015),
			tomorrow: forecastPoint(1, 17, 62, 1015),
			symptoms: []string{"Joint pain", "Headache"},
			wantFactors: map[string][]string{
				"Joint pain": {FactorTemperatureChange},
				"Headache":   {FactorTemperatureChange},
			},
			wantSensitive: map[string]bool{"Joint pain": true, "Headache": true},
		},
		{
			name:     "humidity swing flags every symptom",
			current:  snapshot(20, 40, 1015),
			tomorrow: forecastPoint(1, 22, 65, 1015),
			symptoms: []string{"Asthma"},
			wantFactors: map[string][]string{
				"Asthma": {FactorHumidityChange},
			},
			wantSensitive: map[string]bool{"Asthma": true},
		},
		{
			name:     "headache keyword match is case-insensitive substring",
			current:  snapshot(20, 60, 1015),
			tomorrow: forecastPoint(1, 21, 62, 1005),
			symptoms: []string{"tension HEADACHE", "chronic migraine attacks"},
			wantFactors: map[string][]string{
				"tension HEADACHE":         {FactorPressureDrop},
				"chronic migraine attacks": {FactorPressureDrop},
			},
			wantSensitive: map[string]bool{"tension HEADACHE": true, "chronic migraine attacks": true},
		},
		{
			name:     "combined factors keep stable order",
			current:  snapshot(5, 40, 1015),
			tomorrow: forecastPoint(1, 17, 65, 1005),
			symptoms: []string{"Migraine"},
			wantFactors: map[string][]string{
				"Migraine": {FactorPressureDrop, FactorTemperatureChange, FactorHumidityChange},
			},
			wantSensitive: map[string]bool{"Migraine": true},
		},
		{
			name:     "thresholds are strict inequalities",
			current:  snapshot(20, 60, 1015),
			tomorrow: forecastPoint(1, 30, 80, 1010),
			symptoms: []string{"Headache"},
			wantFactors: map[string][]string{
				"Headache": nil,
			},
			wantSensitive: map[string]bool{"Headache": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := []model.WeatherForecastPoint{tt.tomorrow}
			matches := Correlate(tt.current, forecast, tt.symptoms)
			require.Len(t, matches, len(tt.symptoms))

			for _, match := range matches {
				assert.Equal(t, tt.wantFactors[match.Symptom], match.TriggerFactors, match.Symptom)
				assert.Equal(t, tt.wantSensitive[match.Symptom], match.WeatherSensitive, match.Symptom)
			}
		})
	}
}

func TestCorrelate_EmptyForecast(t *testing.T) {
	matches := Correlate(snapshot(20, 60, 1015), nil, []string{"Headache"})
	require.Len(t, matches, 1)
	assert.False(t, matches[0].WeatherSensitive)
	assert.Empty(t, matches[0].TriggerFactors)
}

func TestCorrelate_NoSymptoms(t *testing.T) {
	assert.Empty(t, Correlate(snapshot(20, 60, 1015), nil, nil))
}
