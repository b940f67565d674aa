package accessor

// Oracle answers identifier-grammar questions for one target language.
// The engine never implements a language's grammar itself.
type Oracle interface {
	// IsValidIdentifier reports whether s can be declared as-is
	IsValidIdentifier(s string) bool

	// MakeValidIdentifier applies the language's own repair strategy.
	// The result is not guaranteed to be valid.
	MakeValidIdentifier(s string) string
}
