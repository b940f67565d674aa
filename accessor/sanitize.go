package accessor

import (
	"strings"
)

// ReplacementChar replaces every disallowed character in a key
const ReplacementChar = '_'

// maxSanitizeAttempts bounds the check/repair loop: plain check, check after
// the oracle's repair, check after the '_' prefix.
const maxSanitizeAttempts = 3

// disallowed lists the characters replaced in resource keys.
// U+00A0 is the no-break space that resource editors tend to leave behind.
var disallowed = map[rune]bool{
	' ': true, '\u00a0': true, '.': true, ',': true, ';': true, '|': true,
	'~': true, '@': true, '#': true, '%': true, '^': true, '&': true,
	'*': true, '+': true, '-': true, '/': true, '\\': true, '<': true,
	'>': true, '?': true, '[': true, ']': true, '(': true, ')': true,
	'{': true, '}': true, '"': true, '\'': true, ':': true, '!': true,
}

func replaceDisallowed(raw string, namespace bool) string {
	return strings.Map(func(r rune) rune {
		if namespace && (r == '.' || r == ':') {
			return r
		}
		if disallowed[r] {
			return ReplacementChar
		}
		return r
	}, raw)
}

// Sanitize converts raw into an identifier the oracle accepts.
// In namespace context periods and colons are kept as separators.
// ok is false when every repair strategy is exhausted.
func Sanitize(raw string, namespace bool, oracle Oracle) (identifier string, ok bool) {
	candidate := replaceDisallowed(raw, namespace)

	for attempt := 0; attempt < maxSanitizeAttempts; attempt++ {
		if oracle.IsValidIdentifier(candidate) {
			return candidate, true
		}
		switch attempt {
		case 0:
			candidate = oracle.MakeValidIdentifier(candidate)
		case 1:
			candidate = string(ReplacementChar) + candidate
		}
	}
	return "", false
}

// SanitizeNamespace sanitizes a dotted namespace segment by segment.
// "::" is accepted as a separator as well as ".". An empty namespace is valid.
func SanitizeNamespace(raw string, oracle Oracle) (string, bool) {
	if raw == "" {
		return "", true
	}

	replaced := replaceDisallowed(raw, true)
	dotted := strings.Split(replaced, ".")
	for i, part := range dotted {
		scoped := strings.Split(part, "::")
		for j, segment := range scoped {
			if segment == "" {
				return "", false
			}
			fixed, ok := Sanitize(segment, false, oracle)
			if !ok {
				return "", false
			}
			scoped[j] = fixed
		}
		dotted[i] = strings.Join(scoped, "::")
	}
	return strings.Join(dotted, "."), true
}
