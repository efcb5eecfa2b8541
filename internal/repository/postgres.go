package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresStore is the database-backed listing store. Raw records and analysis
// results live in JSONB columns of the listings table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgreSQL listing store
func NewPostgresStore(dsn string, maxConn, maxIdleConn int) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// FetchAllRaw returns every raw listing record in insertion order.
func (s *PostgresStore) FetchAllRaw(ctx context.Context) ([]map[string]any, error) {
	var rows [][]byte
	query := `SELECT raw FROM listings ORDER BY id`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoListings
	}

	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		var record map[string]any
		if err := json.Unmarshal(row, &record); err != nil {
			return nil, fmt.Errorf("failed to decode listing record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// UpdateAnalysisBatch persists analysis results for multiple listings inside
// one transaction and returns the number of rows saved.
func (s *PostgresStore) UpdateAnalysisBatch(ctx context.Context, updates []AnalysisUpdate) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE listings SET analysis = $1, updated_at = NOW() WHERE source_id = $2`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, upd := range updates {
		payload, err := json.Marshal(upd.Analysis)
		if err != nil {
			return saved, fmt.Errorf("failed to encode analysis for %s: %w", upd.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, payload, upd.ID); err != nil {
			return saved, fmt.Errorf("failed to update listing %s: %w", upd.ID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

var _ ListingStore = (*PostgresStore)(nil)
