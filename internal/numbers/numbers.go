// Package numbers extracts candidate phone numbers from pasted text.
package numbers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Length is the number of digits in a stored contact number.
const Length = 10

var validate = validator.New()

// Parse splits raw on commas, or on newlines when there is no comma, and
// returns the trimmed segments that consist only of ASCII digits. Text with
// neither delimiter yields no candidates, even if it is a valid number.
// Order and duplicates are preserved.
func Parse(raw string) []string {
	var segments []string
	switch {
	case strings.Contains(raw, ","):
		segments = strings.Split(raw, ",")
	case strings.Contains(raw, "\n"):
		segments = strings.Split(raw, "\n")
	default:
		return []string{}
	}

	candidates := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if IsDigits(segment) {
			candidates = append(candidates, segment)
		}
	}
	return candidates
}

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	return validate.Var(s, "number") == nil
}

// Valid reports whether s can be stored as a contact number.
func Valid(s string) bool {
	return validate.Var(s, "len=10,number") == nil
}
