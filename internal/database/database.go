// Package database is the booking record store, backed by SQLite.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// ErrNotFound reports a lookup for an id with no record behind it.
var ErrNotFound = errors.New("booking not found")

type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(path string, logger *zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	storeLogger := logger.With().Str("component", "database").Logger()
	storeLogger.Info().Str("path", path).Msg("database initialized")
	return &Store{db: db, logger: storeLogger}, nil
}

func createTables(db *sql.DB) error {
	// AUTOINCREMENT keeps deleted ids from ever being handed out again.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            total_price INTEGER NOT NULL,
            deposit_paid BOOLEAN NOT NULL,
            checkin TEXT NOT NULL,
            checkout TEXT NOT NULL,
            additional_needs TEXT,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_first_name ON bookings(first_name)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_last_name ON bookings(last_name)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_checkin ON bookings(checkin)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_checkout ON bookings(checkout)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
