// Package slug derives URL-safe identifiers from human-readable names.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the name and collapses every run of non-alphanumeric
// characters into a single dash. Leading and trailing dashes are
// trimmed, so "  Cafe  Heaven! " becomes "cafe-heaven".
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
