// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zotlink/pkg/types"
)

// ReportFile is the on-disk representation of one scan run. A saved
// report can be reloaded later to diff outcomes between runs without
// rescanning.
type ReportFile struct {
	Args    ReportArgs         `yaml:"args"`
	Summary ReportSummary      `yaml:"summary"`
	Fuzzy   []ReportPair       `yaml:"fuzzy_matches,omitempty"`
	Notes   []types.NoteRecord `yaml:"notes"`
}

// ReportArgs stores the scan arguments that produced the report.
type ReportArgs struct {
	LibraryDir     string `yaml:"library_dir"`
	NotesDir       string `yaml:"notes_dir"`
	IncludePattern string `yaml:"include_pattern"`
	DryRun         bool   `yaml:"dry_run"`
}

// ReportSummary stores the bucket counts and a timestamp.
type ReportSummary struct {
	Total        int       `yaml:"total"`
	Matched      int       `yaml:"matched"`
	FuzzyMatched int       `yaml:"fuzzy_matched"`
	Unmatched    int       `yaml:"unmatched"`
	Skipped      int       `yaml:"skipped"`
	Failed       int       `yaml:"failed"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// ReportPair is one itemized fuzzy match.
type ReportPair struct {
	Note string `yaml:"note"`
	PDF  string `yaml:"pdf"`
}

// WriteReport saves the scan configuration and summary to a YAML file.
func WriteReport(path string, cfg types.LinkConfig, sum Summary) error {
	rf := ReportFile{
		Args: ReportArgs{
			LibraryDir:     cfg.LibraryDir,
			NotesDir:       cfg.NotesDir,
			IncludePattern: cfg.IncludePattern,
			DryRun:         cfg.DryRun,
		},
		Summary: ReportSummary{
			Total:        sum.Total(),
			Matched:      sum.Matched,
			FuzzyMatched: sum.FuzzyMatched,
			Unmatched:    sum.Unmatched,
			Skipped:      sum.Skipped,
			Failed:       sum.Failed,
			Timestamp:    time.Now(),
		},
		Notes: sum.Notes,
	}
	for _, rec := range sum.Notes {
		if rec.Outcome == types.NoteFuzzyMatched {
			rf.Fuzzy = append(rf.Fuzzy, ReportPair{Note: rec.Name, PDF: rec.PDF.Name})
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously saved run report from disk.
func ReadReport(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run report %s: %w", path, err)
	}
	return &rf, nil
}
