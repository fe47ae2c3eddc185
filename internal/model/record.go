package model

import (
	"fmt"
	"strings"
	"time"
)

// JournalRecord represents a single dated entry in a user's health journal.
// The prediction engine only reads the date and symptom labels; anything else
// the journal layer stores alongside an entry is carried opaquely.
type JournalRecord struct {
	Date     time.Time
	ID       string
	Notes    string
	Symptoms []string
}

// Validate ensures the record is usable by the prediction engine.
func (r *JournalRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("record date is required")
	}
	for _, s := range r.Symptoms {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("record %s has an empty symptom label", r.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// DateOnly truncates the record date to midnight UTC for calendar comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
