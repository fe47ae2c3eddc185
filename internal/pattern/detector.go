// Package pattern detects recurring temporal structure in journal records.
package pattern

import (
	"math"
	"sort"
	"time"

	"github.com/prath-way/boitech/internal/model"
)

// Detection thresholds. These are tunable parameters, not derived values;
// they are exported so recalibration doesn't require hunting through the
// detector body.
const (
	// MinRecords is the smallest journal that carries enough signal to scan.
	MinRecords = 7

	// MinOccurrences is the floor for any pattern to be worth reporting.
	MinOccurrences = 2

	// WeekdayConcentration is the share of a symptom's occurrences that must
	// land on its most common weekday for a weekly pattern.
	WeekdayConcentration = 0.4

	// MonthlyVarianceLimit bounds the population variance of day-of-month
	// values for a monthly pattern; 25 keeps occurrences within roughly
	// five days of each other.
	MonthlyVarianceLimit = 25.0

	// MinMonthlyOccurrences is the floor for monthly clustering specifically,
	// since two points always have low variance.
	MinMonthlyOccurrences = 3
)

// Detector scans a user's journal for weekly and monthly symptom patterns.
// It is a pure function of its input: no I/O, no randomness.
type Detector struct {
	minRecords            int
	minOccurrences        int
	minMonthlyOccurrences int
	weekdayConcentration  float64
	monthlyVarianceLimit  float64
}

// NewDetector creates a detector with the default thresholds.
func NewDetector() *Detector {
	return &Detector{
		minRecords:            MinRecords,
		minOccurrences:        MinOccurrences,
		minMonthlyOccurrences: MinMonthlyOccurrences,
		weekdayConcentration:  WeekdayConcentration,
		monthlyVarianceLimit:  MonthlyVarianceLimit,
	}
}

// occurrences is the per-symptom view the detector works from.
type occurrences struct {
	last  time.Time
	dates []time.Time
}

// Detect returns every weekly and monthly pattern present in the records.
// A symptom may produce both kinds of match; they are evaluated independently.
// Fewer than MinRecords records yields no matches at all.
func (d *Detector) Detect(records []model.JournalRecord) []model.PatternMatch {
	if len(records) < d.minRecords {
		return nil
	}

	bySymptom := groupOccurrences(records)

	symptoms := make([]string, 0, len(bySymptom))
	for symptom := range bySymptom {
		symptoms = append(symptoms, symptom)
	}
	sort.Strings(symptoms)

	var matches []model.PatternMatch
	for _, symptom := range symptoms {
		occ := bySymptom[symptom]
		if weekly := d.weeklyMatch(symptom, occ); weekly != nil {
			matches = append(matches, *weekly)
		}
		if monthly := d.monthlyMatch(symptom, occ); monthly != nil {
			matches = append(matches, *monthly)
		}
	}

	return matches
}

// weeklyMatch emits a match when the symptom concentrates on one weekday.
func (d *Detector) weeklyMatch(symptom string, occ occurrences) *model.PatternMatch {
	total := len(occ.dates)
	if total < d.minOccurrences {
		return nil
	}

	var histogram [7]int
	for _, date := range occ.dates {
		histogram[int(date.Weekday())]++
	}

	mode := time.Sunday
	modeCount := 0
	for day, count := range histogram {
		if count > modeCount {
			mode = time.Weekday(day)
			modeCount = count
		}
	}

	// A weekday seen once is never a pattern, regardless of concentration.
	if modeCount < d.minOccurrences {
		return nil
	}

	required := int(math.Ceil(d.weekdayConcentration * float64(total)))
	if modeCount < required {
		return nil
	}

	dow := mode
	return &model.PatternMatch{
		Symptom:         symptom,
		DayOfWeek:       &dow,
		OccurrenceCount: total,
		LastOccurrence:  occ.last,
	}
}

// monthlyMatch emits a match when day-of-month values cluster tightly.
func (d *Detector) monthlyMatch(symptom string, occ occurrences) *model.PatternMatch {
	total := len(occ.dates)
	if total < d.minMonthlyOccurrences {
		return nil
	}

	days := make([]float64, total)
	var sum float64
	for i, date := range occ.dates {
		days[i] = float64(date.Day())
		sum += days[i]
	}
	mean := sum / float64(total)

	var variance float64
	for _, day := range days {
		variance += (day - mean) * (day - mean)
	}
	variance /= float64(total)

	if variance >= d.monthlyVarianceLimit {
		return nil
	}

	dom := int(math.Round(mean))
	return &model.PatternMatch{
		Symptom:         symptom,
		DayOfMonth:      &dom,
		OccurrenceCount: total,
		LastOccurrence:  occ.last,
	}
}

// groupOccurrences collects each symptom's occurrence dates. Records without
// a date carry no temporal signal and are ignored.
func groupOccurrences(records []model.JournalRecord) map[string]occurrences {
	bySymptom := make(map[string]occurrences)
	for _, record := range records {
		if record.Date.IsZero() {
			continue
		}
		date := model.DateOnly(record.Date)
		for _, symptom := range record.Symptoms {
			occ := bySymptom[symptom]
			occ.dates = append(occ.dates, date)
			if date.After(occ.last) {
				occ.last = date
			}
			bySymptom[symptom] = occ
		}
	}
	return bySymptom
}
