package main

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InputKind selects the check applied by ValidateInput.
type InputKind string

const (
	InputText   InputKind = "text"
	InputNumber InputKind = "number"
)

// FormatMessage trims s and upper-cases its first character.
// Internal whitespace is left untouched.
func FormatMessage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	_, size := utf8.DecodeRuneInString(s)
	// A Caser keeps state, so each call gets its own.
	caser := cases.Upper(language.Und)
	return caser.String(s[:size]) + s[size:]
}

// ValidateInput reports whether input is acceptable for the given kind.
// Unknown kinds are always rejected.
func ValidateInput(input string, kind InputKind) bool {
	switch kind {
	case InputText:
		return strings.TrimSpace(input) != ""
	case InputNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if errors.Is(err, strconv.ErrRange) {
			// Out-of-range values still parse as numbers.
			return true
		}
		return err == nil && !math.IsNaN(n)
	default:
		return false
	}
}
