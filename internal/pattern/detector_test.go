package pattern

import (
	"testing"
	"time"

	"github.com/prath-way/boitech/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// day builds a record for a single calendar date.
func day(year int, month time.Month, d int, symptoms ...string) model.JournalRecord {
	return model.JournalRecord{
		Date:     time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
		Symptoms: symptoms,
	}
}

// fillerWeek returns seven symptom-free records so detection has enough
// journal volume without adding occurrences.
func fillerWeek(year int, month time.Month, start int) []model.JournalRecord {
	records := make([]model.JournalRecord, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, day(year, month, start+i))
	}
	return records
}

func TestDetector_RequiresMinimumRecords(t *testing.T) {
	detector := NewDetector()

	records := []model.JournalRecord{
		day(2024, time.March, 4, "Headache"),
		day(2024, time.March, 11, "Headache"),
		day(2024, time.March, 18, "Headache"),
		day(2024, time.March, 25, "Headache"),
	}

	assert.Empty(t, detector.Detect(records), "six or fewer records should yield no matches")
	assert.Empty(t, detector.Detect(nil))
}

func TestDetector_WeeklyPattern(t *testing.T) {
	detector := NewDetector()

	// Headache every Monday for four weeks, padded with empty days.
	records := []model.JournalRecord{
		day(2024, time.March, 4, "Headache"),
		day(2024, time.March, 11, "Headache"),
		day(2024, time.March, 18, "Headache"),
		day(2024, time.March, 25, "Headache"),
	}
	records = append(records, fillerWeek(2024, time.February, 1)...)

	matches := detector.Detect(records)
	require.Len(t, matches, 1)

	match := matches[0]
	assert.Equal(t, "Headache", match.Symptom)
	require.NotNil(t, match.DayOfWeek)
	assert.Equal(t, time.Monday, *match.DayOfWeek)
	assert.Nil(t, match.DayOfMonth, "weekday occurrences spread across the month should not cluster monthly")
	assert.Equal(t, 4, match.OccurrenceCount)
	assert.Equal(t, time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC), match.LastOccurrence)
}

func TestDetector_TwoScatteredOccurrences(t *testing.T) {
	detector := NewDetector()

	// Logged exactly twice, different weekdays, far apart in the month.
	records := []model.JournalRecord{
		day(2024, time.March, 5, "Nausea"),
		day(2024, time.March, 20, "Nausea"),
	}
	records = append(records, fillerWeek(2024, time.March, 7)...)

	assert.Empty(t, detector.Detect(records))
}

func TestDetector_MonthlyPattern(t *testing.T) {
	detector := NewDetector()

	// Cramps near the 15th across three months: days 14, 15, 16.
	records := []model.JournalRecord{
		day(2024, time.January, 14, "Cramps"),
		day(2024, time.February, 15, "Cramps"),
		day(2024, time.March, 16, "Cramps"),
	}
	records = append(records, fillerWeek(2024, time.March, 18)...)

	matches := detector.Detect(records)

	var monthly *model.PatternMatch
	for i := range matches {
		if matches[i].IsMonthly() {
			monthly = &matches[i]
		}
	}
	require.NotNil(t, monthly, "expected a monthly match")
	assert.Equal(t, "Cramps", monthly.Symptom)
	assert.Equal(t, 15, *monthly.DayOfMonth)
	assert.Equal(t, 3, monthly.OccurrenceCount)
}

func TestDetector_MonthlyRequiresThreeOccurrences(t *testing.T) {
	detector := NewDetector()

	// Two same-day-of-month occurrences have zero variance but too little
	// support for a monthly pattern.
	records := []model.JournalRecord{
		day(2024, time.January, 10, "Fatigue"),
		day(2024, time.February, 10, "Fatigue"),
	}
	records = append(records, fillerWeek(2024, time.February, 12)...)

	for _, match := range detector.Detect(records) {
		assert.False(t, match.IsMonthly(), "monthly match should need at least three occurrences")
	}
}

func TestDetector_MonthlyVarianceBoundary(t *testing.T) {
	detector := NewDetector()

	// Days 5, 15, 25: mean 15, population variance 66.7, well over the limit.
	spread := []model.JournalRecord{
		day(2024, time.January, 5, "Dizziness"),
		day(2024, time.February, 15, "Dizziness"),
		day(2024, time.March, 25, "Dizziness"),
	}
	spread = append(spread, fillerWeek(2024, time.March, 1)...)

	for _, match := range detector.Detect(spread) {
		assert.False(t, match.IsMonthly(), "high-variance days should not form a monthly pattern")
	}
}

func TestDetector_WeeklyAndMonthlyForSameSymptom(t *testing.T) {
	detector := NewDetector()

	// First Monday of four consecutive months: a weekday pattern, and
	// day-of-month values 1, 5, 4, 1 that also cluster tightly.
	records := []model.JournalRecord{
		day(2024, time.January, 1, "Migraine"),
		day(2024, time.February, 5, "Migraine"),
		day(2024, time.March, 4, "Migraine"),
		day(2024, time.April, 1, "Migraine"),
	}
	records = append(records, fillerWeek(2024, time.April, 3)...)

	matches := detector.Detect(records)
	require.Len(t, matches, 2)

	assert.True(t, matches[0].IsWeekly())
	assert.Equal(t, time.Monday, *matches[0].DayOfWeek)
	assert.True(t, matches[1].IsMonthly())
}

func TestDetector_ConcentrationThreshold(t *testing.T) {
	detector := NewDetector()

	// Five occurrences: two on Monday, then Tuesday, Wednesday, Thursday.
	// Mode count 2 = 40% of 5, exactly at the threshold.
	atThreshold := []model.JournalRecord{
		day(2024, time.March, 4, "Backache"),  // Monday
		day(2024, time.March, 11, "Backache"), // Monday
		day(2024, time.March, 12, "Backache"), // Tuesday
		day(2024, time.March, 20, "Backache"), // Wednesday
		day(2024, time.March, 28, "Backache"), // Thursday
	}
	atThreshold = append(atThreshold, fillerWeek(2024, time.March, 21)...)

	matches := detector.Detect(atThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, time.Monday, *matches[0].DayOfWeek)
	assert.Equal(t, 5, matches[0].OccurrenceCount)
}

func TestDetector_IgnoresUndatedRecords(t *testing.T) {
	detector := NewDetector()

	records := []model.JournalRecord{
		{Symptoms: []string{"Headache"}}, // zero date, no temporal signal
		day(2024, time.March, 4, "Headache"),
		day(2024, time.March, 11, "Headache"),
		day(2024, time.March, 18, "Headache"),
		day(2024, time.March, 25, "Headache"),
	}
	records = append(records, fillerWeek(2024, time.February, 1)...)

	matches := detector.Detect(records)
	require.Len(t, matches, 1)
	assert.Equal(t, 4, matches[0].OccurrenceCount)
}

func TestDetector_Deterministic(t *testing.T) {
	detector := NewDetector()

	records := []model.JournalRecord{
		day(2024, time.March, 4, "Headache", "Fatigue"),
		day(2024, time.March, 11, "Headache"),
		day(2024, time.March, 12, "Fatigue"),
		day(2024, time.March, 18, "Headache"),
		day(2024, time.March, 19, "Fatigue"),
		day(2024, time.March, 25, "Headache"),
	}
	records = append(records, fillerWeek(2024, time.February, 1)...)

	first := detector.Detect(records)
	second := detector.Detect(records)
	assert.Equal(t, first, second, "detection must be a pure function of its input")
}
