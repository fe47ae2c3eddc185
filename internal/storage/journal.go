package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prath-way/boitech/internal/model"
	"github.com/prath-way/boitech/internal/service"
)

// SaveRecords inserts or replaces journal records. A record for an existing
// date replaces that date's entry; dates are unique per record.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.JournalRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range records {
		record := &records[i]
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		date := model.DateOnly(record.Date)

		// Drop any previous entry for this date before inserting.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM journal_records WHERE date = ? AND id != ?", date, record.ID); err != nil {
			return fmt.Errorf("failed to replace record for %s: %w", date.Format("2006-01-02"), err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO journal_records (id, date, notes) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET date = excluded.date, notes = excluded.notes`,
			record.ID, date, record.Notes)
		if err != nil {
			return fmt.Errorf("failed to save record %s: %w", record.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM journal_symptoms WHERE record_id = ?", record.ID); err != nil {
			return fmt.Errorf("failed to clear symptoms for %s: %w", record.ID, err)
		}
		for _, symptom := range record.Symptoms {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO journal_symptoms (record_id, symptom) VALUES (?, ?)
				ON CONFLICT(record_id, symptom) DO NOTHING`,
				record.ID, strings.TrimSpace(symptom))
			if err != nil {
				return fmt.Errorf("failed to save symptom %q: %w", symptom, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// GetRecords returns journal records matching the filter, newest first.
func (s *SQLiteStorage) GetRecords(ctx context.Context, filter service.RecordFilter) ([]model.JournalRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT r.id, r.date, r.notes
		FROM journal_records r`
	var (
		clauses []string
		args    []any
	)

	if filter.Symptom != "" {
		query += ` JOIN journal_symptoms sy ON sy.record_id = r.id`
		clauses = append(clauses, "LOWER(sy.symptom) = LOWER(?)")
		args = append(args, filter.Symptom)
	}
	if filter.StartDate != nil {
		clauses = append(clauses, "r.date >= ?")
		args = append(args, model.DateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "r.date <= ?")
		args = append(args, model.DateOnly(*filter.EndDate))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY r.date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.JournalRecord
	for rows.Next() {
		var (
			record model.JournalRecord
			notes  sql.NullString
		)
		if err := rows.Scan(&record.ID, &record.Date, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record.Notes = notes.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	// Attach symptoms per record.
	for i := range records {
		symptoms, err := s.symptomsForRecord(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Symptoms = symptoms
	}

	return records, nil
}

// CountRecords returns the total number of journal records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal_records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) symptomsForRecord(ctx context.Context, recordID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT symptom FROM journal_symptoms WHERE record_id = ? ORDER BY symptom", recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query symptoms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var symptoms []string
	for rows.Next() {
		var symptom string
		if err := rows.Scan(&symptom); err != nil {
			return nil, fmt.Errorf("failed to scan symptom: %w", err)
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate symptoms: %w", err)
	}
	return symptoms, nil
}
