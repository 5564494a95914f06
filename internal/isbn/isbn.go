// Package isbn normalizes and validates ISBN query strings.
package isbn

import "strings"

// Normalize strips everything except digits and the check character X
// from raw, uppercasing X. Hyphens, spaces and any other separators are
// dropped. Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// Valid reports whether a normalized ISBN has an acceptable length.
// Only the length is checked (10 or 13); no checksum validation is done,
// the providers reject nonsense identifiers themselves.
func Valid(normalized string) bool {
	return len(normalized) == 10 || len(normalized) == 13
}
