package model

// PredictionSettings controls a user session's prediction behavior. The engine
// reads the settings fresh on every generation run.
type PredictionSettings struct {
	Location             *Location `json:"location,omitempty"`
	MinConfidence        float64   `json:"min_confidence"`
	DaysToPredict        int       `json:"days_to_predict"`
	Enabled              bool      `json:"enabled"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	WeatherIntegration   bool      `json:"weather_integration"`
}

// DefaultPredictionSettings returns the documented defaults used until the
// user saves their own.
func DefaultPredictionSettings() PredictionSettings {
	return PredictionSettings{
		Enabled:              true,
		NotificationsEnabled: true,
		WeatherIntegration:   true,
		MinConfidence:        0.6,
		DaysToPredict:        3,
	}
}

// Normalize clamps out-of-range values to the supported windows rather than
// rejecting them. Callers are expected to supply sane values; the engine must
// still behave when they don't.
func (s *PredictionSettings) Normalize() {
	if s.MinConfidence < 0 {
		s.MinConfidence = 0
	}
	if s.MinConfidence > 1 {
		s.MinConfidence = 1
	}
	if s.DaysToPredict < 1 {
		s.DaysToPredict = 1
	}
	if s.DaysToPredict > 7 {
		s.DaysToPredict = 7
	}
}
