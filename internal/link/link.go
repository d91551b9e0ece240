// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package link owns the deep-link line format, the already-linked check,
// and the position-stable insertion rule. A note carries its link on line
// 6: lines 1-5 are preserved verbatim ahead of it and everything from the
// old line 6 onward shifts down by one. Notes shorter than 5 lines get
// the link appended after their existing content, with no blank-line
// padding.
package link

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker is the protocol substring that identifies an existing deep link.
const Marker = "zotero://open-pdf"

// linkLineIndex is the zero-based slice index of the link line.
const linkLineIndex = 5

// URI returns the deep-link target for a library item. The item key goes
// in verbatim: Zotero resolves it against the storage directory name.
func URI(itemID string) string {
	return "zotero://open-pdf/library/items/" + itemID
}

// Line returns the literal markdown line inserted into a note.
func Line(itemID string) string {
	return fmt.Sprintf("[Open in Zotero](%s)", URI(itemID))
}

// HasLink reports whether note content is already linked: true iff a 6th
// line exists and contains the protocol marker. Links that ended up
// elsewhere (for example in notes that were shorter than 5 lines when
// linked) are not detected; that asymmetry is inherited behavior.
func HasLink(content string) bool {
	lines := strings.Split(content, "\n")
	return len(lines) > linkLineIndex && strings.Contains(lines[linkLineIndex], Marker)
}

// Insert returns content with the deep link for itemID as the new line 6,
// or appended after the last line when the note has fewer than 5 lines. A
// trailing newline, when present, stays trailing.
func Insert(content, itemID string) string {
	lines := strings.Split(content, "\n")

	idx := linkLineIndex
	if idx > len(lines) {
		idx = len(lines)
	}
	// Splitting "a\nb\n" yields a final empty element for the trailing
	// newline. Appending goes before it so the newline convention of the
	// file is preserved.
	if idx == len(lines) && idx > 0 && lines[idx-1] == "" {
		idx--
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, Line(itemID))
	out = append(out, lines[idx:]...)
	return strings.Join(out, "\n")
}

// Apply writes the linked version of the note at path. The path must lie
// within notesRoot; anything that escapes it is refused with an error the
// caller records against that note alone. Dry-run computes the rewrite
// and skips the write.
func Apply(notesRoot, path, content, itemID string, dryRun bool) error {
	if err := withinRoot(notesRoot, path); err != nil {
		return err
	}
	if dryRun {
		return nil
	}
	if err := os.WriteFile(path, []byte(Insert(content, itemID)), 0o644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}
	return nil
}

// withinRoot rejects paths outside root after resolving both to absolute,
// cleaned form.
func withinRoot(root, path string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving notes root: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving note path: %w", err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("note path %s escapes notes root %s", path, root)
	}
	return nil
}
