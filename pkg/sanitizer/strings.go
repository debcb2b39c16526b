package sanitizer

import (
	"strings"
	"unicode"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string { return strings.TrimSpace(s) }

// Lower lowercases s.
func Lower(s string) string { return strings.ToLower(s) }

// Email trims and lowercases an address.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Squash collapses runs of whitespace into single spaces and trims.
func Squash(s string) string { return strings.Join(strings.Fields(s), " ") }

// Username trims and drops every character outside letters, digits
// and @.+-_ (the characters a username may contain).
func Username(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
}

// Newlines normalizes CRLF and CR line endings to LF.
func Newlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
