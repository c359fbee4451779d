package utils

import "unicode/utf8"

// Truncate shortens text to at most maxLen characters, appending "..." when
// anything was cut. Counts runes, not bytes.
func Truncate(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}
