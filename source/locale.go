package source

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// IsLocalizedFile reports whether path names a culture-specific satellite
// source such as "Strings.fr-FR.resx". Satellites share the neutral
// source's accessors and generate nothing themselves.
func IsLocalizedFile(path string) bool {
	_, ok := Culture(path)
	return ok
}

// Culture returns the culture tag of a satellite source
func Culture(path string) (language.Tag, bool) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return language.Und, false
	}

	tag, err := language.Parse(name[dot+1:])
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

// NeutralName strips the culture segment from a satellite source name
func NeutralName(path string) string {
	if !IsLocalizedFile(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem[:strings.LastIndex(stem, ".")] + ext
}
