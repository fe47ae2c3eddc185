// Package scoring turns pattern evidence into bounded confidence values and
// discrete risk levels.
package scoring

import (
	"math"

	"github.com/prath-way/boitech/internal/model"
)

// Scoring weights. Each term of the confidence formula is capped
// independently so no single signal can dominate.
const (
	// PatternStrengthCap bounds the share of confidence earned from raw
	// occurrence frequency.
	PatternStrengthCap = 0.4

	// WeatherBonus is added when the forecast matches a known trigger.
	WeatherBonus = 0.3

	// RecencyBonusMax is the bonus for a symptom seen today; it decays by
	// RecencyDecayPerDay until it reaches zero after fifteen days.
	RecencyBonusMax    = 0.3
	RecencyDecayPerDay = 0.02
)

// Risk thresholds over the combined confidence/likelihood score.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.5
)

// Confidence combines pattern strength, weather correlation, and recency into
// a value in [0,1]. A negative daysSinceLastOccurrence (future-dated record)
// is treated as an occurrence today, keeping the recency bonus at its cap.
func Confidence(patternOccurrences, totalEntries int, weatherMatch bool, daysSinceLastOccurrence int) float64 {
	if daysSinceLastOccurrence < 0 {
		daysSinceLastOccurrence = 0
	}

	var patternStrength float64
	if totalEntries > 0 && patternOccurrences > 0 {
		patternStrength = math.Min(float64(patternOccurrences)/float64(totalEntries), PatternStrengthCap)
	}

	var weatherBonus float64
	if weatherMatch {
		weatherBonus = WeatherBonus
	}

	recencyBonus := math.Max(0, RecencyBonusMax-RecencyDecayPerDay*float64(daysSinceLastOccurrence))

	return clamp01(patternStrength + weatherBonus + recencyBonus)
}

// Likelihood is the user-facing percent form of a confidence value. The two
// are the same quantity in different units; keeping the conversion here keeps
// displays consistent.
func Likelihood(confidence float64) int {
	return int(math.Round(clamp01(confidence) * 100))
}

// ClassifyRisk maps a confidence/likelihood pair onto a risk bucket.
func ClassifyRisk(confidence float64, likelihood int) model.RiskLevel {
	score := (clamp01(confidence) + float64(likelihood)/100) / 2
	switch {
	case score >= highRiskThreshold:
		return model.RiskHigh
	case score >= mediumRiskThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
