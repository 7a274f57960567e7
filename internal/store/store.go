// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists crawl runs and their extraction records in a
// SQLite database so past crawls can be listed and re-exported.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/primer-crawler/internal/crawl"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

// Store manages the crawl run SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database at path and ensures the schema
// exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = "primer-crawler.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			gene TEXT NOT NULL,
			started TEXT NOT NULL,
			articles INTEGER NOT NULL,
			with_primers INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			pmcid TEXT NOT NULL,
			url TEXT,
			gene TEXT,
			forward TEXT,
			reverse TEXT,
			success INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_pmcid ON records(pmcid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID          string    `json:"id" yaml:"id"`
	Query       string    `json:"query" yaml:"query"`
	Gene        string    `json:"gene" yaml:"gene"`
	Started     time.Time `json:"started" yaml:"started"`
	Articles    int       `json:"articles" yaml:"articles"`
	WithPrimers int       `json:"with_primers" yaml:"with_primers"`
}

// SaveRun persists a crawl report as a new run and returns its ID.
// The run row and all record rows commit atomically.
func (s *Store) SaveRun(ctx context.Context, report crawl.Report) (string, error) {
	id := uuid.NewString()
	started := report.Summary.Timestamp
	if started.IsZero() {
		started = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, gene, started, articles, with_primers)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, report.Query, report.Gene, started.Format(time.RFC3339),
		report.Summary.Articles, report.Summary.WithPrimers,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, position, pmcid, url, gene, forward, reverse, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range report.Records {
		_, err := stmt.ExecContext(ctx,
			id, i, rec.ID, rec.SourceURL, rec.Gene,
			rec.Primers.Forward, rec.Primers.Reverse, boolToInt(rec.SuccessEvidence),
		)
		if err != nil {
			return "", fmt.Errorf("inserting record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns all stored runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, gene, started, articles, with_primers
		 FROM runs ORDER BY started DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &r.Query, &r.Gene, &started, &r.Articles, &r.WithPrimers); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.Started = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunRecords returns the ordered extraction records of one run.
func (s *Store) RunRecords(ctx context.Context, runID string) ([]types.ExtractionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pmcid, url, gene, forward, reverse, success
		 FROM records WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.ExtractionRecord
	for rows.Next() {
		var rec types.ExtractionRecord
		var success int
		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.Gene,
			&rec.Primers.Forward, &rec.Primers.Reverse, &success); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.SuccessEvidence = success != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		// Distinguish an unknown run from an empty one.
		var n int
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
			return nil, fmt.Errorf("checking run: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("unknown run %q", runID)
		}
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
