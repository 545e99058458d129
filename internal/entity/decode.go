// Package entity resolves HTML character references in editor text.
package entity

import (
	"strings"

	"golang.org/x/net/html"
)

// Decode resolves named and numeric character references. Double-encoded
// input such as "&amp;lt;" is resolved all the way down, which makes
// Decode(Decode(s)) == Decode(s) for every s. Each pass that changes s
// also shortens it, so the loop always reaches a fixpoint.
func Decode(s string) string {
	for strings.Contains(s, "&") {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}
