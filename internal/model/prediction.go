package model

import (
	"fmt"
	"time"
)

// RiskLevel buckets a prediction's urgency for display.
type RiskLevel string

// Risk levels ordered from least to most urgent.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Validate ensures the risk level is one of the known buckets.
func (r RiskLevel) Validate() error {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return nil
	default:
		return fmt.Errorf("invalid risk level: %q", string(r))
	}
}

// TriggerType classifies the evidence cited for a prediction.
type TriggerType string

// Trigger types.
const (
	TriggerPattern TriggerType = "pattern" // recurring weekday structure
	TriggerWeather TriggerType = "weather" // forecast delta correlation
	TriggerCyclic  TriggerType = "cyclic"  // recurring day-of-month structure
)

// Validate ensures the trigger type is one of the known variants.
func (t TriggerType) Validate() error {
	switch t {
	case TriggerPattern, TriggerWeather, TriggerCyclic:
		return nil
	default:
		return fmt.Errorf("invalid trigger type: %q", string(t))
	}
}

// Trigger is one piece of contributing evidence attached to a prediction.
type Trigger struct {
	Type        TriggerType `json:"type"`
	Factor      string      `json:"factor"`
	Description string      `json:"description"`
	Impact      float64     `json:"impact"` // 0 through 1
}

// Prediction is a risk-scored forecast of a symptom flare-up. Predictions are
// immutable once generated; they expire when PredictedDate passes.
type Prediction struct {
	CreatedAt       time.Time
	PredictedDate   time.Time
	ID              string
	Symptom         string
	Reasoning       string
	RiskLevel       RiskLevel
	Triggers        []Trigger
	Recommendations []string
	Confidence      float64
	DaysAhead       int
	Likelihood      int // Confidence expressed as an integer percent
}

// Expired reports whether the prediction's date is strictly before today.
func (p *Prediction) Expired(today time.Time) bool {
	return DateOnly(p.PredictedDate).Before(DateOnly(today))
}

// Validate checks the invariants every generated prediction must satisfy.
func (p *Prediction) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if err := p.RiskLevel.Validate(); err != nil {
		return err
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence %f out of range [0,1]", p.Confidence)
	}
	if p.Likelihood < 0 || p.Likelihood > 100 {
		return fmt.Errorf("likelihood %d out of range [0,100]", p.Likelihood)
	}
	if p.DaysAhead < 0 || p.DaysAhead > 7 {
		return fmt.Errorf("days ahead %d out of range [0,7]", p.DaysAhead)
	}
	for _, trigger := range p.Triggers {
		if err := trigger.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}
