// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	assert.Equal(t,
		"[Open in Zotero](zotero://open-pdf/library/items/ABC123)",
		Line("ABC123"))
}

func TestHasLink(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "link on line six",
			content: "t\n\na\nb\nc\n[Open in Zotero](zotero://open-pdf/library/items/X)\nbody\n",
			want:    true,
		},
		{
			name:    "marker on line six without markdown wrapper still counts",
			content: "1\n2\n3\n4\n5\nsee zotero://open-pdf/library/items/X\n",
			want:    true,
		},
		{
			name:    "marker on a different line",
			content: "zotero://open-pdf/library/items/X\n2\n3\n4\n5\n6\n",
			want:    false,
		},
		{
			name:    "no sixth line",
			content: "1\n2\n3\n",
			want:    false,
		},
		{
			name:    "empty note",
			content: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasLink(tt.content), tt.name)
		})
	}
}

func TestInsert(t *testing.T) {
	linkLine := Line("K1")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "six or more lines shift down",
			content: "1\n2\n3\n4\n5\n6\n7\n",
			want:    "1\n2\n3\n4\n5\n" + linkLine + "\n6\n7\n",
		},
		{
			name:    "exactly five lines with trailing newline",
			content: "1\n2\n3\n4\n5\n",
			want:    "1\n2\n3\n4\n5\n" + linkLine + "\n",
		},
		{
			name:    "exactly five lines without trailing newline",
			content: "1\n2\n3\n4\n5",
			want:    "1\n2\n3\n4\n5\n" + linkLine,
		},
		{
			name:    "short note gets the link appended",
			content: "title\nbody\n",
			want:    "title\nbody\n" + linkLine + "\n",
		},
		{
			name:    "short note without trailing newline",
			content: "title",
			want:    "title\n" + linkLine,
		},
		{
			name:    "empty note",
			content: "",
			want:    linkLine + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insert(tt.content, "K1"))
		})
	}
}

func TestInsertThenHasLink(t *testing.T) {
	// A note with at least five lines is detected as linked afterwards.
	content := "a\nb\nc\nd\ne\nf\n"
	assert.True(t, HasLink(Insert(content, "K1")))
}

func TestInsertPreservesOtherLines(t *testing.T) {
	content := "L1\nL2\nL3\nL4\nL5\nL6\nL7\nL8"
	got := Insert(content, "K1")
	assert.Equal(t, "L1\nL2\nL3\nL4\nL5\n"+Line("K1")+"\nL6\nL7\nL8", got)
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "note.md")
	content := "1\n2\n3\n4\n5\n6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, Apply(root, path, content, "ABC123", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n4\n5\n"+Line("ABC123")+"\n6\n", string(data))
}

func TestApplyDryRunLeavesFileUntouched(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "note.md")
	content := "1\n2\n3\n4\n5\n6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, Apply(root, path, content, "ABC123", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestApplyRefusesEscapingPath(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "other.md")
	require.NoError(t, os.WriteFile(outside, []byte("x\n"), 0o644))

	err := Apply(root, outside, "x\n", "ABC123", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes notes root")

	// Relative traversal out of the root is refused too.
	err = Apply(root, filepath.Join(root, "..", "evil.md"), "x\n", "ABC123", false)
	require.Error(t, err)

	// The outside file stays untouched.
	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}
