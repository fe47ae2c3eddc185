package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite. The whole
// store is a single logical document: the active prediction set plus the
// settings row. Writes replace the set, they never partially mutate it, so
// last write wins without further locking.
type SQLiteStorage struct {
	db      *sql.DB
	nowFunc func() time.Time
	dbPath  string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists for file-backed databases
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:      db,
		dbPath:  dbPath,
		nowFunc: time.Now,
	}, nil
}

// SetNowFunc overrides the store's clock. Expiry queries compare against
// "today" as reported by this function; tests use it to advance time.
func (s *SQLiteStorage) SetNowFunc(now func() time.Time) {
	if now != nil {
		s.nowFunc = now
	}
}

// today returns the current calendar date at midnight UTC.
func (s *SQLiteStorage) today() time.Time {
	now := s.nowFunc()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
