// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LinkConfig holds settings for a linking scan.
type LinkConfig struct {
	// LibraryDir is the Zotero storage root: one subdirectory per
	// library item, each containing the item's PDF file(s).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// NotesDir is the root of the markdown notes tree, addressed
	// recursively.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// DryRun computes every outcome without writing any note file.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// IncludePattern selects note files relative to NotesDir
	// (doublestar syntax, default "**/*.md").
	IncludePattern string `json:"include_pattern" yaml:"include_pattern"`

	// ReportPath, when set, writes a YAML run report after the scan.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// Validate checks that the scan configuration is complete.
func (c *LinkConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LibraryDir, validation.Required),
		validation.Field(&c.NotesDir, validation.Required),
		validation.Field(&c.IncludePattern, validation.Required),
	)
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Parent directories are created
	// on open.
	Path string `json:"path" yaml:"path"`

	// Disabled skips history recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Validate checks the history configuration. A disabled store needs no path.
func (c *HistoryConfig) Validate() error {
	if c.Disabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after a filesystem event before the
	// scan re-runs (default 500ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// Config groups all zotlink settings.
type Config struct {
	Link    LinkConfig    `json:"link" yaml:"link"`
	History HistoryConfig `json:"history" yaml:"history"`
	Watch   WatchConfig   `json:"watch" yaml:"watch"`
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Link.Validate(); err != nil {
		return err
	}
	return c.History.Validate()
}
