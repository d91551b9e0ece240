// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize reduces arbitrary filenames to canonical comparison
// tokens. Two filenames that reduce to the same token are treated as the
// same work regardless of original formatting.
package normalize

import (
	"regexp"
	"strings"
)

// maxTokenLen caps the token length; comparison beyond 80 characters adds
// nothing for filename-sized inputs.
const maxTokenLen = 80

// yearRunRe matches any 4-digit run starting with 1 or 2 (1000-2999).
// Deliberately broader than plausible publication years: narrowing it to
// real year ranges would change which filenames match.
var yearRunRe = regexp.MustCompile(`[12][0-9]{3}`)

// Token reduces a display name (filename without extension) to its
// comparison token. The steps apply in order — each operates on the
// output of the previous one:
//
//  1. lowercase
//  2. remove the literal substring "et al." (the variant without the
//     period is not removed)
//  3. drop the leading author segment: everything through the first '-',
//     plus any '-' run immediately following it
//  4. remove every 4-digit run 1000-2999
//  5. keep ASCII letters only
//  6. truncate to 80 characters
//
// Token is pure, deterministic, and idempotent.
func Token(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "et al.", "")
	s = stripAuthorSegment(s)
	s = yearRunRe.ReplaceAllString(s, "")
	s = lettersOnly(s)
	if len(s) > maxTokenLen {
		s = s[:maxTokenLen]
	}
	return s
}

// stripAuthorSegment removes everything up to and including the first '-'
// and any further leading '-' characters after it. Names without a dash
// pass through unchanged.
func stripAuthorSegment(s string) string {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		return s
	}
	s = s[i+1:]
	for len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	return s
}

// lettersOnly strips every character that is not an ASCII letter. The
// input is already lowercased, so the survivors are a-z.
func lettersOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
