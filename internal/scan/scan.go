// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan drives a full linking pass: it enumerates the PDF corpus,
// walks the notes tree, and runs each note through the skip check, the
// matcher, and the linker, accumulating the outcome buckets.
// Implements the per-note failure policy: configuration problems abort
// before scanning, everything after that is recovered locally and the
// run always ends with a summary.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/zotlink/internal/library"
	"github.com/pdiddy/zotlink/internal/link"
	"github.com/pdiddy/zotlink/internal/match"
	"github.com/pdiddy/zotlink/internal/normalize"
	"github.com/pdiddy/zotlink/pkg/types"
)

// DefaultIncludePattern selects markdown notes recursively.
const DefaultIncludePattern = "**/*.md"

// Summary aggregates the outcome buckets of one scan. The buckets are
// appended to synchronously as each note completes and read once when the
// summary is printed; nothing survives the invocation.
type Summary struct {
	Matched      int                `json:"matched" yaml:"matched"`
	FuzzyMatched int                `json:"fuzzy_matched" yaml:"fuzzy_matched"`
	Unmatched    int                `json:"unmatched" yaml:"unmatched"`
	Skipped      int                `json:"skipped" yaml:"skipped"`
	Failed       int                `json:"failed" yaml:"failed"`
	Notes        []types.NoteRecord `json:"notes" yaml:"notes"`
}

// Total returns the total number of notes processed.
func (s Summary) Total() int {
	return s.Matched + s.FuzzyMatched + s.Unmatched + s.Skipped + s.Failed
}

// HasFailures reports whether any note failed individually.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// add records a completed note in its bucket.
func (s *Summary) add(rec types.NoteRecord) {
	switch rec.Outcome {
	case types.NoteMatched:
		s.Matched++
	case types.NoteFuzzyMatched:
		s.FuzzyMatched++
	case types.NoteUnmatched:
		s.Unmatched++
	case types.NoteSkipped:
		s.Skipped++
	case types.NoteFailed:
		s.Failed++
	}
	s.Notes = append(s.Notes, rec)
}

// Run executes one linking pass and writes per-note progress plus the
// final summary to w. The returned error covers configuration problems
// only (unreadable roots, bad include pattern); per-note failures land in
// the Failed bucket and never abort the pass.
func Run(cfg types.LinkConfig, w io.Writer) (Summary, error) {
	var sum Summary

	if err := cfg.Validate(); err != nil {
		return sum, fmt.Errorf("invalid scan configuration: %w", err)
	}

	corpus, err := library.Scan(cfg.LibraryDir, w)
	if err != nil {
		return sum, err
	}

	notePaths, err := discoverNotes(cfg.NotesDir, cfg.IncludePattern)
	if err != nil {
		return sum, err
	}

	fmt.Fprintf(w, "Scanning %d notes against %d PDFs", len(notePaths), len(corpus))
	if cfg.DryRun {
		fmt.Fprint(w, " (dry run)")
	}
	fmt.Fprintln(w, "")

	for _, path := range notePaths {
		rec := processNote(cfg, corpus, path)
		sum.add(rec)
		printProgress(w, rec)
	}

	printSummary(w, sum)
	return sum, nil
}

// discoverNotes returns note paths under root matching pattern, in
// doublestar's deterministic walk order. Paths are joined back onto root.
func discoverNotes(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("matching notes with pattern %q: %w", pattern, err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	return paths, nil
}

// processNote takes one note to its terminal state: Skipped when line 6
// already carries the deep link, otherwise Matched/FuzzyMatched against
// the first corpus record to reach a match kind, else Unmatched. Read and
// write errors become a Failed record for this note alone.
func processNote(cfg types.LinkConfig, corpus []types.PDFRecord, path string) types.NoteRecord {
	rec := types.NoteRecord{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		rec.Outcome = types.NoteFailed
		rec.Err = err.Error()
		return rec
	}
	content := string(data)

	if link.HasLink(content) {
		rec.Outcome = types.NoteSkipped
		return rec
	}

	rec.Token = normalize.Token(rec.Name)

	pdf, kind := match.First(rec.Token, corpus)
	if kind == types.MatchNone {
		rec.Outcome = types.NoteUnmatched
		return rec
	}

	if err := link.Apply(cfg.NotesDir, path, content, pdf.ItemID, cfg.DryRun); err != nil {
		rec.Outcome = types.NoteFailed
		rec.Err = err.Error()
		return rec
	}

	rec.PDF = pdf
	if kind == types.MatchExact {
		rec.Outcome = types.NoteMatched
	} else {
		rec.Outcome = types.NoteFuzzyMatched
	}
	return rec
}

// printProgress writes the running one-line status for a completed note.
func printProgress(w io.Writer, rec types.NoteRecord) {
	switch rec.Outcome {
	case types.NoteMatched:
		fmt.Fprintf(w, "linked:    %s -> %s\n", rec.Name, rec.PDF.ItemID)
	case types.NoteFuzzyMatched:
		fmt.Fprintf(w, "fuzzy:     %s -> %s\n", rec.Name, rec.PDF.Name)
	case types.NoteSkipped:
		fmt.Fprintf(w, "skipped:   %s (already linked)\n", rec.Name)
	case types.NoteUnmatched:
		fmt.Fprintf(w, "unmatched: %s\n", rec.Name)
	case types.NoteFailed:
		fmt.Fprintf(w, "failed:    %s (%s)\n", rec.Name, rec.Err)
	}
}

// printSummary writes the counts and the itemized fuzzy, unmatched, and
// failed lists.
func printSummary(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "\nNotes: %d total, %d linked, %d already linked, %d unmatched\n",
		sum.Total(), sum.Matched+sum.FuzzyMatched, sum.Skipped, sum.Unmatched)

	if sum.FuzzyMatched > 0 {
		fmt.Fprintln(w, "\nFuzzy matches:")
		for _, rec := range sum.Notes {
			if rec.Outcome == types.NoteFuzzyMatched {
				fmt.Fprintf(w, "  %s -> %s\n", rec.Name, rec.PDF.Name)
			}
		}
	}

	if sum.Unmatched > 0 {
		fmt.Fprintln(w, "\nUnmatched notes:")
		for _, rec := range sum.Notes {
			if rec.Outcome == types.NoteUnmatched {
				fmt.Fprintf(w, "  %s\n", rec.Name)
			}
		}
	}

	if sum.Failed > 0 {
		fmt.Fprintln(w, "\nFailed notes:")
		for _, rec := range sum.Notes {
			if rec.Outcome == types.NoteFailed {
				fmt.Fprintf(w, "  %s: %s\n", rec.Name, rec.Err)
			}
		}
	}
}
