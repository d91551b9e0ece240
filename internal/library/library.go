// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library enumerates PDF records from Zotero storage. Storage is
// one subdirectory per library item, each holding the item's PDF file(s);
// the subdirectory name is the item key that deep links resolve against.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/zotlink/internal/normalize"
	"github.com/pdiddy/zotlink/pkg/types"
)

// Scan enumerates every PDF under the storage root and returns records in
// deterministic order: item directories as os.ReadDir yields them
// (sorted), then PDF files within each, also sorted. Tokens are computed
// once here; the corpus is never mutated during a run, so callers can
// match every note against the same slice.
//
// An unreadable storage root is an error. An unreadable item directory is
// not: it is reported to w and skipped, matching the per-item failure
// policy of the rest of the pipeline.
func Scan(root string, w io.Writer) ([]types.PDFRecord, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading library storage %s: %w", root, err)
	}

	var corpus []types.PDFRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		itemID := entry.Name()
		itemDir := filepath.Join(root, itemID)

		files, err := os.ReadDir(itemDir)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping item %s: %v\n", itemID, err)
			continue
		}

		for _, f := range files {
			if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".pdf") {
				continue
			}
			name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			corpus = append(corpus, types.PDFRecord{
				ItemID: itemID,
				Path:   filepath.Join(itemDir, f.Name()),
				Name:   name,
				Token:  normalize.Token(name),
			})
		}
	}
	return corpus, nil
}
