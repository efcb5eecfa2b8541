package utils

import (
	"strings"
	"unicode"
)

// Capitalize upper-cases the first rune and lower-cases the rest, the way
// listing locations arrive ("kraków" -> "Kraków").
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TruncateRunes limits a string to n runes, keeping multi-byte characters
// intact.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
