// Package normalize holds the canonical forms for values we persist.
// Applying these in one place keeps lookups and unique indexes consistent
// regardless of which handler a value arrived through.
package normalize

import "strings"

// Email lowercases and trims an email address. The users.email unique index
// relies on every write passing through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person name and collapses interior runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
