package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS journal_records (
					id TEXT PRIMARY KEY,
					date DATETIME UNIQUE NOT NULL,
					notes TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_journal_records_date ON journal_records(date)`,

				`CREATE TABLE IF NOT EXISTS journal_symptoms (
					record_id TEXT NOT NULL,
					symptom TEXT NOT NULL,
					PRIMARY KEY (record_id, symptom),
					FOREIGN KEY (record_id) REFERENCES journal_records(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_journal_symptoms_symptom ON journal_symptoms(symptom)`,

				`CREATE TABLE IF NOT EXISTS predictions (
					id TEXT PRIMARY KEY,
					symptom TEXT,
					risk_level TEXT NOT NULL,
					confidence REAL NOT NULL,
					days_ahead INTEGER NOT NULL,
					predicted_date DATETIME NOT NULL,
					likelihood INTEGER NOT NULL,
					triggers TEXT,
					recommendations TEXT,
					reasoning TEXT,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_predictions_date ON predictions(predicted_date)`,
				`CREATE INDEX idx_predictions_risk ON predictions(risk_level)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Prediction settings",
		Up: func(tx *sql.Tx) error {
			// Single-row table; id is always 1.
			query := `CREATE TABLE IF NOT EXISTS prediction_settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				enabled BOOLEAN NOT NULL DEFAULT 1,
				notifications_enabled BOOLEAN NOT NULL DEFAULT 1,
				weather_integration BOOLEAN NOT NULL DEFAULT 1,
				min_confidence REAL NOT NULL DEFAULT 0.6,
				days_to_predict INTEGER NOT NULL DEFAULT 3,
				location TEXT,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`
			if _, err := tx.Exec(query); err != nil {
				return fmt.Errorf("failed to create settings table: %w", err)
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
