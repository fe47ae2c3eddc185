package model

import "time"

// PatternMatch describes a recurring temporal association between a symptom
// and a calendar position. A symptom may carry both a weekday match and a
// day-of-month match; each is evaluated independently by the detector.
type PatternMatch struct {
	LastOccurrence  time.Time
	DayOfWeek       *time.Weekday // 0 (Sunday) through 6 (Saturday)
	DayOfMonth      *int          // 1 through 31
	Symptom         string
	OccurrenceCount int
}

// IsWeekly reports whether this match is anchored to a day of the week.
func (p *PatternMatch) IsWeekly() bool {
	return p.DayOfWeek != nil
}

// IsMonthly reports whether this match is anchored to a day of the month.
func (p *PatternMatch) IsMonthly() bool {
	return p.DayOfMonth != nil
}

// TriggerMatch records whether a symptom looks weather-sensitive given the
// forecast deltas, and which weather factors contributed.
type TriggerMatch struct {
	Symptom          string
	TriggerFactors   []string
	WeatherSensitive bool
}
