package format

import "strings"

// Sanitize turns an arbitrary display key into an identifier token by
// replacing every rune outside [A-Za-z0-9_-] with an underscore. Keys that
// differ only in replaced characters map to the same token.
func Sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
}
