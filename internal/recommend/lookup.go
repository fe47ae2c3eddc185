// Package recommend supplies preventive advice strings for symptom labels.
package recommend

import (
	"sort"
	"strings"
)

// Lookup answers recommendations from a static advice table. Matching is
// case-insensitive: exact label first, then substring in either direction,
// then a generic fallback so callers always get something actionable.
type Lookup struct {
	table    map[string][]string
	labels   []string
	fallback []string
}

// NewLookup creates a lookup backed by the built-in advice table.
func NewLookup() *Lookup {
	labels := make([]string, 0, len(adviceTable))
	for label := range adviceTable {
		labels = append(labels, label)
	}
	// Substring matching walks labels in a fixed order so a symptom that
	// matches several entries always resolves to the same one.
	sort.Strings(labels)

	return &Lookup{
		table:    adviceTable,
		labels:   labels,
		fallback: genericAdvice,
	}
}

// RecommendationsFor returns advice for a symptom label. The result is never
// empty.
func (l *Lookup) RecommendationsFor(symptom string) []string {
	key := strings.ToLower(strings.TrimSpace(symptom))
	if key == "" {
		return cloneStrings(l.fallback)
	}

	if advice, ok := l.table[key]; ok {
		return cloneStrings(advice)
	}

	for _, label := range l.labels {
		if strings.Contains(key, label) || strings.Contains(label, key) {
			return cloneStrings(l.table[label])
		}
	}

	return cloneStrings(l.fallback)
}

// cloneStrings keeps callers from mutating the shared table.
func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

var genericAdvice = []string{
	"Stay hydrated throughout the day",
	"Prioritize consistent sleep and wake times",
	"Keep a note of anything unusual in your journal",
	"Consult a healthcare provider if symptoms persist",
}

var adviceTable = map[string][]string{
	"headache": {
		"Stay hydrated and limit caffeine",
		"Take screen breaks every hour",
		"Keep regular meal times to avoid blood sugar dips",
		"Rest in a quiet, dimly lit room at the first sign",
	},
	"migraine": {
		"Avoid known dietary triggers today",
		"Keep rescue medication within reach",
		"Reduce exposure to bright light and loud noise",
		"Plan for a lighter schedule if possible",
	},
	"fatigue": {
		"Aim for an earlier bedtime tonight",
		"Take short walks instead of long rest periods",
		"Limit caffeine after midday",
		"Break tasks into smaller chunks",
	},
	"joint pain": {
		"Do gentle range-of-motion exercises",
		"Keep joints warm in cold weather",
		"Avoid high-impact activity today",
		"Consider a warm bath to ease stiffness",
	},
	"back pain": {
		"Check your sitting posture and chair support",
		"Stretch gently every couple of hours",
		"Avoid heavy lifting today",
		"Apply heat to tense muscles",
	},
	"nausea": {
		"Eat small, bland meals through the day",
		"Sip fluids slowly rather than large amounts",
		"Avoid strong smells where possible",
		"Get fresh air if a wave hits",
	},
	"dizziness": {
		"Rise slowly from sitting or lying down",
		"Keep well hydrated",
		"Avoid driving if episodes are frequent",
		"Sit down immediately when lightheaded",
	},
	"cramps": {
		"Apply a heating pad to the affected area",
		"Stay gently active rather than sedentary",
		"Keep up magnesium-rich foods",
		"Stretch before bed",
	},
	"asthma": {
		"Keep your reliever inhaler with you",
		"Check the air quality forecast before going out",
		"Warm up gradually before exercise",
		"Avoid known allergen exposure today",
	},
	"allergies": {
		"Check today's pollen forecast",
		"Keep windows closed during high pollen hours",
		"Shower after extended time outdoors",
		"Take antihistamines before symptoms start",
	},
	"anxiety": {
		"Schedule short breathing breaks",
		"Limit caffeine today",
		"Get some daylight early in the day",
		"Write down what is on your mind before bed",
	},
	"insomnia": {
		"Avoid screens in the hour before bed",
		"Keep the bedroom cool and dark",
		"Skip late-afternoon caffeine",
		"Get up at the same time regardless of sleep",
	},
}
