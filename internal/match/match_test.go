// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"
	"testing"

	"github.com/pdiddy/zotlink/pkg/types"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want types.MatchKind
	}{
		{
			name: "equal tokens",
			a:    "machinelearningbasics",
			b:    "machinelearningbasics",
			want: types.MatchExact,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: types.MatchExact,
		},
		{
			name: "empty against non-empty fails the length gate",
			a:    "",
			b:    "deeplearning",
			want: types.MatchNone,
		},
		{
			name: "length gate rejects short token",
			a:    "abc",
			b:    "abcdefghij",
			want: types.MatchNone,
		},
		{
			name: "substring within gate is fuzzy",
			a:    "deeplearning",
			b:    "deeplearningoverview",
			want: types.MatchFuzzy,
		},
		{
			name: "one trailing extra character is fuzzy",
			a:    "deeplearningoverview",
			b:    "deeplearningoverviews",
			want: types.MatchFuzzy,
		},
		{
			name: "leading insertion collapses positional similarity",
			a:    "xdeeplearningoverview",
			b:    "deeplearningoverviews",
			want: types.MatchNone,
		},
		{
			name: "unrelated tokens of similar length",
			a:    "machinelearningbasics",
			b:    "quantumcomputingintro",
			want: types.MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"deeplearning", "deeplearningoverview"},
		{"deeplearningoverview", "deeplearningoverviews"},
		{"abc", "abcdefghij"},
		{"same", "same"},
	}
	for _, p := range pairs {
		if Compare(p[0], p[1]) != Compare(p[1], p[0]) {
			t.Errorf("Compare(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestCompareLengthGate(t *testing.T) {
	// Any shorter token below 60% of the longer length is rejected even
	// when it is a perfect prefix.
	longer := strings.Repeat("a", 100)
	shorter := strings.Repeat("a", 59)
	if got := Compare(shorter, longer); got != types.MatchNone {
		t.Errorf("Compare below length gate = %q, want none", got)
	}
	// At exactly 60% the substring rule applies.
	if got := Compare(strings.Repeat("a", 60), longer); got != types.MatchFuzzy {
		t.Errorf("Compare at length gate = %q, want fuzzy", got)
	}
}

func TestCompareSimilarityThreshold(t *testing.T) {
	// 20 aligned positions, one mismatch in the middle, no substring
	// relationship: similarity = 19*100/20 = 95.
	a := "aaaaaaaaaaXaaaaaaaaa"
	b := "aaaaaaaaaaaaaaaaaaaa"
	if got := Compare(a, b); got != types.MatchFuzzy {
		t.Errorf("Compare at 95%% similarity = %q, want fuzzy", got)
	}

	// Three mismatches: similarity = 17*100/20 = 85, below threshold.
	c := "aaaXaaaaaaXaaaaaaXaa"
	if got := Compare(c, b); got != types.MatchNone {
		t.Errorf("Compare at 85%% similarity = %q, want none", got)
	}
}

func TestFirstStopsAtFirstMatch(t *testing.T) {
	corpus := []types.PDFRecord{
		{ItemID: "AAA", Token: "unrelatedtoken"},
		{ItemID: "BBB", Token: "deeplearningoverview"},
		{ItemID: "CCC", Token: "deeplearningoverview"},
	}
	pdf, kind := First("deeplearningoverview", corpus)
	if kind != types.MatchExact {
		t.Fatalf("kind = %q, want exact", kind)
	}
	if pdf.ItemID != "BBB" {
		t.Errorf("First picked %q, want BBB (first in enumeration order)", pdf.ItemID)
	}
}

func TestFirstExhaustsCorpus(t *testing.T) {
	corpus := []types.PDFRecord{
		{ItemID: "AAA", Token: "alpha"},
		{ItemID: "BBB", Token: "beta"},
	}
	pdf, kind := First("somethingelse", corpus)
	if pdf != nil || kind != types.MatchNone {
		t.Errorf("First = (%v, %q), want (nil, none)", pdf, kind)
	}
}
