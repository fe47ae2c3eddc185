package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/prath-way/boitech/internal/model"
)

// SavePredictions replaces the persisted prediction set with the given one.
// The overwrite happens in a single transaction so readers never observe a
// partial set.
func (s *SQLiteStorage) SavePredictions(ctx context.Context, predictions []model.Prediction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePredictions(predictions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM predictions"); err != nil {
		return fmt.Errorf("failed to clear predictions: %w", err)
	}

	query := `
		INSERT INTO predictions (
			id, symptom, risk_level, confidence, days_ahead, predicted_date,
			likelihood, triggers, recommendations, reasoning, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range predictions {
		p := &predictions[i]

		triggersJSON, err := json.Marshal(p.Triggers)
		if err != nil {
			return fmt.Errorf("failed to marshal triggers: %w", err)
		}
		recsJSON, err := json.Marshal(p.Recommendations)
		if err != nil {
			return fmt.Errorf("failed to marshal recommendations: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			p.ID, p.Symptom, string(p.RiskLevel), p.Confidence, p.DaysAhead,
			p.PredictedDate, p.Likelihood, string(triggersJSON), string(recsJSON),
			p.Reasoning, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save prediction %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit predictions: %w", err)
	}

	slog.Info("saved prediction set", "count", len(predictions))
	return nil
}

// GetPredictions returns all unexpired predictions, soonest first. Expired
// rows are filtered here and physically removed by PurgeExpired.
func (s *SQLiteStorage) GetPredictions(ctx context.Context) ([]model.Prediction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, symptom, risk_level, confidence, days_ahead, predicted_date,
			likelihood, triggers, recommendations, reasoning, created_at
		FROM predictions
		WHERE predicted_date >= ?
		ORDER BY days_ahead ASC, confidence DESC`

	rows, err := s.db.QueryContext(ctx, query, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPredictions(rows)
}

// GetPredictionsForToday filters the active set to predictions dated today.
func (s *SQLiteStorage) GetPredictionsForToday(ctx context.Context) ([]model.Prediction, error) {
	predictions, err := s.GetPredictions(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	var out []model.Prediction
	for _, p := range predictions {
		if model.DateOnly(p.PredictedDate).Equal(today) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetHighRiskPredictions filters the active set to high-risk predictions.
func (s *SQLiteStorage) GetHighRiskPredictions(ctx context.Context) ([]model.Prediction, error) {
	predictions, err := s.GetPredictions(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.Prediction
	for _, p := range predictions {
		if p.RiskLevel == model.RiskHigh {
			out = append(out, p)
		}
	}
	return out, nil
}

// PurgeExpired physically deletes predictions dated before today and returns
// how many rows were removed.
func (s *SQLiteStorage) PurgeExpired(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM predictions WHERE predicted_date < ?", s.today())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired predictions: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged predictions: %w", err)
	}

	if purged > 0 {
		slog.Info("purged expired predictions", "count", purged)
	}
	return int(purged), nil
}

func scanPredictions(rows *sql.Rows) ([]model.Prediction, error) {
	var predictions []model.Prediction
	for rows.Next() {
		var (
			p            model.Prediction
			riskLevel    string
			triggersJSON sql.NullString
			recsJSON     sql.NullString
		)

		err := rows.Scan(&p.ID, &p.Symptom, &riskLevel, &p.Confidence, &p.DaysAhead,
			&p.PredictedDate, &p.Likelihood, &triggersJSON, &recsJSON,
			&p.Reasoning, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}

		p.RiskLevel = model.RiskLevel(riskLevel)
		if triggersJSON.Valid && triggersJSON.String != "" {
			if err := json.Unmarshal([]byte(triggersJSON.String), &p.Triggers); err != nil {
				return nil, fmt.Errorf("failed to unmarshal triggers for %s: %w", p.ID, err)
			}
		}
		if recsJSON.Valid && recsJSON.String != "" {
			if err := json.Unmarshal([]byte(recsJSON.String), &p.Recommendations); err != nil {
				return nil, fmt.Errorf("failed to unmarshal recommendations for %s: %w", p.ID, err)
			}
		}

		predictions = append(predictions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return predictions, nil
}
