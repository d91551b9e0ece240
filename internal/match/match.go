// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether two normalized tokens refer to the same
// work. The fuzzy comparison is index-aligned character equality, not
// edit distance: a single inserted or deleted character near the start of
// one token collapses nearly all subsequent matches. That behavior is
// load-bearing — callers depend on which filenames match today, so do not
// substitute an alignment-tolerant metric.
package match

import (
	"strings"

	"github.com/pdiddy/zotlink/pkg/types"
)

const (
	// lenRatioPct gates fuzzy evaluation: the shorter token must be at
	// least 60% of the longer token's length.
	lenRatioPct = 60

	// similarityPct is the positional-similarity acceptance threshold.
	similarityPct = 90
)

// Compare classifies tokens a and b. Equal tokens are Exact. Otherwise
// the pair is Fuzzy when it passes the length-ratio gate and either the
// shorter token is a contiguous substring of the longer, or the
// position-aligned similarity reaches the threshold.
func Compare(a, b string) types.MatchKind {
	if a == b {
		return types.MatchExact
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	// ceil(len(longer) * 0.6) in integer arithmetic.
	minLen := (len(longer)*lenRatioPct + 99) / 100
	if len(shorter) < minLen {
		return types.MatchNone
	}

	if strings.Contains(longer, shorter) {
		return types.MatchFuzzy
	}

	if similarity(shorter, longer) >= similarityPct {
		return types.MatchFuzzy
	}
	return types.MatchNone
}

// similarity counts index-aligned equal characters over the shorter
// length and scales by the longer length. Integer division, 0-100.
func similarity(shorter, longer string) int {
	matches := 0
	for i := 0; i < len(shorter); i++ {
		if shorter[i] == longer[i] {
			matches++
		}
	}
	return matches * 100 / len(longer)
}

// First scans PDF records in enumeration order and returns the first one
// whose token reaches Exact or Fuzzy against token, stopping at that
// record. It returns nil and MatchNone when the corpus is exhausted.
func First(token string, corpus []types.PDFRecord) (*types.PDFRecord, types.MatchKind) {
	for i := range corpus {
		if kind := Compare(token, corpus[i].Token); kind != types.MatchNone {
			return &corpus[i], kind
		}
	}
	return nil, types.MatchNone
}
