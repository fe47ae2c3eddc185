package scoring

import (
	"math"
	"testing"

	"github.com/prath-way/boitech/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name         string
		occurrences  int
		totalEntries int
		daysSince    int
		want         float64
		weatherMatch bool
	}{
		{
			name:         "pattern strength capped at 0.4",
			occurrences:  30,
			totalEntries: 30,
			daysSince:    100,
			want:         0.4,
		},
		{
			name:         "weather bonus adds 0.3",
			occurrences:  30,
			totalEntries: 30,
			weatherMatch: true,
			daysSince:    100,
			want:         0.7,
		},
		{
			name:         "recency bonus full for same-day occurrence",
			occurrences:  4,
			totalEntries: 28,
			daysSince:    0,
			want:         4.0/28 + 0.3,
		},
		{
			name:         "recency decays two points per day",
			occurrences:  4,
			totalEntries: 28,
			daysSince:    5,
			want:         4.0/28 + 0.2,
		},
		{
			name:         "recency exhausted after fifteen days",
			occurrences:  4,
			totalEntries: 28,
			daysSince:    15,
			want:         4.0 / 28,
		},
		{
			name:         "all bonuses never exceed one",
			occurrences:  30,
			totalEntries: 30,
			weatherMatch: true,
			daysSince:    0,
			want:         1.0,
		},
		{
			name:         "zero entries yields zero strength",
			occurrences:  0,
			totalEntries: 0,
			daysSince:    100,
			want:         0,
		},
		{
			name:         "future-dated occurrence scores like today",
			occurrences:  4,
			totalEntries: 28,
			daysSince:    -3,
			want:         4.0/28 + 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.occurrences, tt.totalEntries, tt.weatherMatch, tt.daysSince)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestLikelihood_MatchesConfidenceExactly(t *testing.T) {
	for _, conf := range []float64{0, 0.004, 0.005, 0.333, 0.5, 0.555, 0.999, 1} {
		likelihood := Likelihood(conf)
		assert.Equal(t, int(math.Round(conf*100)), likelihood)
		assert.GreaterOrEqual(t, likelihood, 0)
		assert.LessOrEqual(t, likelihood, 100)
	}
}

func TestLikelihood_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 100, Likelihood(3.7))
	assert.Equal(t, 0, Likelihood(-0.5))
	assert.Equal(t, 0, Likelihood(math.NaN()))
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name       string
		want       model.RiskLevel
		confidence float64
		likelihood int
	}{
		{name: "high at threshold", confidence: 0.7, likelihood: 70, want: model.RiskHigh},
		{name: "high above threshold", confidence: 0.9, likelihood: 90, want: model.RiskHigh},
		{name: "medium at threshold", confidence: 0.5, likelihood: 50, want: model.RiskMedium},
		{name: "medium just below high", confidence: 0.69, likelihood: 69, want: model.RiskMedium},
		{name: "low just below medium", confidence: 0.49, likelihood: 49, want: model.RiskLow},
		{name: "low at zero", confidence: 0, likelihood: 0, want: model.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.confidence, tt.likelihood))
		})
	}
}

// Confidence and likelihood are the same quantity in different units, so risk
// classification over the derived pair must agree with the thresholds for any
// confidence value.
func TestClassifyRisk_ConsistentWithDerivedLikelihood(t *testing.T) {
	for conf := 0.0; conf <= 1.0; conf += 0.01 {
		likelihood := Likelihood(conf)
		risk := ClassifyRisk(conf, likelihood)
		score := (conf + float64(likelihood)/100) / 2

		switch {
		case score >= 0.7:
			assert.Equal(t, model.RiskHigh, risk, "confidence %f", conf)
		case score >= 0.5:
			assert.Equal(t, model.RiskMedium, risk, "confidence %f", conf)
		default:
			assert.Equal(t, model.RiskLow, risk, "confidence %f", conf)
		}
	}
}
