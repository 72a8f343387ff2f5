package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims surrounding whitespace and caps the result at maxLen
// characters, never splitting a multibyte character.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return string(runes[:maxLen])
}

// SanitizeOptional trims an optional value, mapping blank input to nil.
func SanitizeOptional(input *string, maxLen int) *string {
	if input == nil {
		return nil
	}
	clean := SanitizeString(*input, maxLen)
	if clean == "" {
		return nil
	}
	return &clean
}
