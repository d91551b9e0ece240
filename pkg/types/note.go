// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the zotlink scan
// pipeline: note and PDF records, match classification, and scan outcomes.
package types

// MatchKind classifies the relationship between two normalized tokens.
type MatchKind string

const (
	// MatchNone means the tokens do not correspond to the same work.
	MatchNone MatchKind = "none"

	// MatchFuzzy means the tokens passed the length gate and either the
	// substring rule or the positional similarity threshold.
	MatchFuzzy MatchKind = "fuzzy"

	// MatchExact means the tokens are equal after normalization.
	MatchExact MatchKind = "exact"
)

// NoteOutcome is the terminal classification of a scanned note.
type NoteOutcome string

const (
	// NoteMatched: an exact-match PDF was found and the link applied.
	NoteMatched NoteOutcome = "matched"

	// NoteFuzzyMatched: a fuzzy-match PDF was found and the link applied.
	// Behaviorally identical to NoteMatched, but reported separately.
	NoteFuzzyMatched NoteOutcome = "fuzzy"

	// NoteUnmatched: no PDF in the library matched the note.
	NoteUnmatched NoteOutcome = "unmatched"

	// NoteSkipped: the note already carries a deep link on line 6.
	NoteSkipped NoteOutcome = "skipped"

	// NoteFailed: a per-note error (unreadable file, path outside the
	// notes root, write failure). Never aborts the run.
	NoteFailed NoteOutcome = "failed"
)

// PDFRecord describes one PDF file in Zotero storage. The item ID is the
// name of the PDF's immediate parent directory, preserved verbatim: Zotero
// resolves zotero://open-pdf links by that directory name, so case and
// punctuation matter.
type PDFRecord struct {
	// ItemID is the library item key (storage subdirectory name).
	ItemID string `json:"item_id" yaml:"item_id"`

	// Path is the filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Name is the display name: the filename without its extension.
	Name string `json:"name" yaml:"name"`

	// Token is the normalized comparison token for Name.
	Token string `json:"token" yaml:"token"`
}

// NoteRecord tracks one discovered note through a scan. Records live for
// a single scan pass; nothing is retained across runs except what the
// history store chooses to persist.
type NoteRecord struct {
	// Path is the filesystem path to the note.
	Path string `json:"path" yaml:"path"`

	// Name is the display name: the filename without its extension.
	Name string `json:"name" yaml:"name"`

	// Token is the normalized comparison token for Name. Empty for
	// skipped notes, which are never normalized or matched.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Outcome is the terminal state assigned by the scan.
	Outcome NoteOutcome `json:"outcome" yaml:"outcome"`

	// PDF is the matched record for matched and fuzzy-matched notes.
	PDF *PDFRecord `json:"pdf,omitempty" yaml:"pdf,omitempty"`

	// Err holds the failure message for failed notes.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}
