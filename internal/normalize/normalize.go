// Package normalize holds the canonical forms used for stored and compared strings.
package normalize

import "strings"

// Email returns the stored form of an email address: surrounding
// whitespace trimmed and lower-cased.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Prefix returns a search prefix with surrounding whitespace removed.
// Case is preserved because the backend range query is case-sensitive.
func Prefix(p string) string {
	return strings.TrimSpace(p)
}

// HasFoldPrefix reports whether s starts with prefix, ignoring case.
func HasFoldPrefix(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(strings.TrimSpace(prefix)))
}
