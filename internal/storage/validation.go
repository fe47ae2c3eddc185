// Package storage provides the data persistence layer for the boitech application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prath-way/boitech/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidRecord     = errors.New("invalid journal record")
	ErrInvalidPrediction = errors.New("invalid prediction")
	ErrInvalidSettings   = errors.New("invalid prediction settings")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a slice of journal records.
func validateRecords(records []model.JournalRecord) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return fmt.Errorf("%w: record at index %d: %v", ErrInvalidRecord, i, err)
		}
	}
	return nil
}

// validatePredictions validates a slice of predictions.
func validatePredictions(predictions []model.Prediction) error {
	if predictions == nil {
		return fmt.Errorf("%w: predictions", ErrNilParameter)
	}
	for i := range predictions {
		if err := predictions[i].Validate(); err != nil {
			return fmt.Errorf("%w: prediction at index %d: %v", ErrInvalidPrediction, i, err)
		}
	}
	return nil
}

// validateSettings checks settings shapes that would indicate programmer
// error rather than a merely unusual configuration.
func validateSettings(settings model.PredictionSettings) error {
	if settings.MinConfidence < 0 || settings.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %f out of range [0,1]", ErrInvalidSettings, settings.MinConfidence)
	}
	if settings.DaysToPredict < 1 || settings.DaysToPredict > 7 {
		return fmt.Errorf("%w: days to predict %d out of range [1,7]", ErrInvalidSettings, settings.DaysToPredict)
	}
	return nil
}
