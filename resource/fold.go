package resource

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s. Keys and identifiers are compared
// through their folded forms everywhere in resgen.
func Fold(s string) string {
	// A Caser is stateful; one per call keeps Fold safe for concurrent use
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under case folding
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// CompareFold orders strings case-insensitively by ordinal value of their
// folded forms, falling back to the raw strings so the order is total.
func CompareFold(a, b string) int {
	if c := strings.Compare(Fold(a), Fold(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
