package accessor

import "unicode"

// testOracle follows the C# identifier grammar closely enough for the engine:
// a letter or '_' followed by letters, digits or '_', and not a keyword.
type testOracle struct{}

var testKeywords = map[string]bool{
	"class": true, "int": true, "namespace": true, "public": true, "string": true, "void": true,
}

func (testOracle) IsValidIdentifier(s string) bool {
	if s == "" || testKeywords[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// MakeValidIdentifier only escapes keywords, like the real provider does
func (testOracle) MakeValidIdentifier(s string) string {
	if testKeywords[s] {
		return "_" + s
	}
	return s
}
