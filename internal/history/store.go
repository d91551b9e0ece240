// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists scan runs to a local SQLite database so
// earlier passes can be compared after the fact. Recording is additive
// bookkeeping: a failed or disabled store never changes what a scan does
// to the notes tree.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/zotlink/internal/scan"
	"github.com/pdiddy/zotlink/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			library_dir TEXT NOT NULL,
			notes_dir TEXT NOT NULL,
			dry_run INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			fuzzy_matched INTEGER NOT NULL,
			unmatched INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_notes (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			item_id TEXT,
			pdf_name TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_notes_run_id ON run_notes(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded scan with its bucket counts.
type Run struct {
	ID           int64     `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	LibraryDir   string    `json:"library_dir"`
	NotesDir     string    `json:"notes_dir"`
	DryRun       bool      `json:"dry_run"`
	Matched      int       `json:"matched"`
	FuzzyMatched int       `json:"fuzzy_matched"`
	Unmatched    int       `json:"unmatched"`
	Skipped      int       `json:"skipped"`
	Failed       int       `json:"failed"`
}

// Total returns the number of notes the run processed.
func (r Run) Total() int {
	return r.Matched + r.FuzzyMatched + r.Unmatched + r.Skipped + r.Failed
}

// RecordRun appends a scan run and its per-note outcomes, returning the
// new run ID.
func (s *Store) RecordRun(ctx context.Context, cfg types.LinkConfig, sum scan.Summary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, library_dir, notes_dir, dry_run,
			matched, fuzzy_matched, unmatched, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		cfg.LibraryDir, cfg.NotesDir, cfg.DryRun,
		sum.Matched, sum.FuzzyMatched, sum.Unmatched, sum.Skipped, sum.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_notes (run_id, path, outcome, item_id, pdf_name, error)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing note insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range sum.Notes {
		itemID, pdfName := "", ""
		if rec.PDF != nil {
			itemID, pdfName = rec.PDF.ItemID, rec.PDF.Name
		}
		if _, err := stmt.ExecContext(ctx,
			runID, rec.Path, string(rec.Outcome), itemID, pdfName, rec.Err,
		); err != nil {
			return 0, fmt.Errorf("inserting note outcome %s: %w", rec.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. A limit of 0 or less
// means 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, library_dir, notes_dir, dry_run,
			matched, fuzzy_matched, unmatched, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.LibraryDir, &r.NotesDir, &r.DryRun,
			&r.Matched, &r.FuzzyMatched, &r.Unmatched, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// NoteOutcomes returns the recorded per-note outcomes for one run, in the
// order the scan processed them.
func (s *Store) NoteOutcomes(ctx context.Context, runID int64) ([]types.NoteRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, outcome, item_id, pdf_name, error
		 FROM run_notes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying note outcomes: %w", err)
	}
	defer rows.Close()

	var notes []types.NoteRecord
	for rows.Next() {
		var rec types.NoteRecord
		var itemID, pdfName string
		if err := rows.Scan(&rec.Path, &rec.Outcome, &itemID, &pdfName, &rec.Err); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		rec.Name = strings.TrimSuffix(filepath.Base(rec.Path), filepath.Ext(rec.Path))
		if itemID != "" {
			rec.PDF = &types.PDFRecord{ItemID: itemID, Name: pdfName}
		}
		notes = append(notes, rec)
	}
	return notes, rows.Err()
}
