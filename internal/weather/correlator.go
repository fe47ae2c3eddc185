// Package weather correlates forecast deltas with historical symptoms and
// implements the Open-Meteo provider used for enrichment.
package weather

import (
	"math"
	"strings"

	"github.com/prath-way/boitech/internal/model"
)

// Delta thresholds for flagging a symptom as weather-sensitive. Tunable
// parameters; the values come from the reference behavior, not a derivation.
const (
	// PressureDropThresholdHPa is the overnight pressure drop that matters
	// for headache-class symptoms.
	PressureDropThresholdHPa = 5.0

	// TemperatureSwingThresholdC flags any symptom when tomorrow swings this
	// far in either direction.
	TemperatureSwingThresholdC = 10.0

	// HumiditySwingThresholdPct flags any symptom on a humidity swing of
	// this many percentage points.
	HumiditySwingThresholdPct = 20.0
)

// Factor labels attached to trigger matches.
const (
	FactorPressureDrop      = "pressure drop"
	FactorTemperatureChange = "temperature change"
	FactorHumidityChange    = "humidity change"
)

// pressureSensitiveKeywords mark symptom labels that react to barometric
// pressure drops.
var pressureSensitiveKeywords = []string{"headache", "migraine"}

// Deltas holds the change in conditions between today and tomorrow.
type Deltas struct {
	PressureDrop      float64
	TemperatureChange float64
	HumidityChange    float64
}

// ComputeDeltas derives tomorrow's weather change from the current snapshot
// and forecast. A forecast without a daysAhead==1 point yields zero deltas.
func ComputeDeltas(current model.WeatherSnapshot, forecast []model.WeatherForecastPoint) Deltas {
	for _, point := range forecast {
		if point.DaysAhead == 1 {
			return Deltas{
				PressureDrop:      current.PressureHPa - point.PressureHPa,
				TemperatureChange: point.TemperatureC - current.TemperatureC,
				HumidityChange:    point.HumidityPct - current.HumidityPct,
			}
		}
	}
	return Deltas{}
}

// Correlate classifies each historical symptom against tomorrow's weather
// deltas. Pure function; callers own the weather fetch. An empty forecast
// produces matches with no trigger factors, never an error.
func Correlate(current model.WeatherSnapshot, forecast []model.WeatherForecastPoint, symptoms []string) []model.TriggerMatch {
	deltas := ComputeDeltas(current, forecast)

	matches := make([]model.TriggerMatch, 0, len(symptoms))
	for _, symptom := range symptoms {
		var factors []string

		if isPressureSensitive(symptom) && deltas.PressureDrop > PressureDropThresholdHPa {
			factors = append(factors, FactorPressureDrop)
		}
		if math.Abs(deltas.TemperatureChange) > TemperatureSwingThresholdC {
			factors = append(factors, FactorTemperatureChange)
		}
		if math.Abs(deltas.HumidityChange) > HumiditySwingThresholdPct {
			factors = append(factors, FactorHumidityChange)
		}

		matches = append(matches, model.TriggerMatch{
			Symptom:          symptom,
			TriggerFactors:   factors,
			WeatherSensitive: len(factors) > 0,
		})
	}

	return matches
}

func isPressureSensitive(symptom string) bool {
	lowered := strings.ToLower(symptom)
	for _, keyword := range pressureSensitiveKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
