// Package htmlsanitize strips markup from caller-supplied text before it is
// persisted. Identity-provider profile fields arrive from the network and are
// echoed back to browsers by downstream consumers, so they are reduced to
// plain text here.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML elements and attributes, leaving only the text
// content. Entities in the remaining text are escaped by the policy.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strict.Sanitize(s)
}
