package generate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/source"
)

// Discover expands paths into the resource sources to generate from.
// Directories are walked recursively, skipping hidden directories. Walking
// picks up .resx files plus the JSON, YAML and TOML files matching one of
// the include patterns. Files named explicitly are kept even when localized
// so Run can report the skip.
func Discover(paths, include []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			inputs = append(inputs, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", p)
		}
		if !info.IsDir() {
			if !source.IsSupported(p) {
				return nil, errors.WithHintf(
					errors.Wrapf(errors.ErrUnsupportedFormat, "%s", p),
					"supported extensions: %s", strings.Join(source.Extensions, ", "))
			}
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsCandidate(p, path, include) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", p)
		}
	}

	sort.Strings(inputs)
	return inputs, nil
}

// IsCandidate reports whether a file found below root is a neutral resource
// source rather than config, a backup, a satellite or an unrelated data file
func IsCandidate(root, path string, include []string) bool {
	base := filepath.Base(path)
	switch {
	case !source.IsSupported(path):
		return false
	case base == config.ProjectConfigFile:
		return false
	case config.IsBackupFile(path):
		return false
	case source.IsLocalizedFile(path):
		return false
	case strings.EqualFold(filepath.Ext(path), ".resx"):
		return true
	}
	return Included(root, path, include)
}

// Included reports whether path matches one of the include patterns.
// Patterns without a slash match the file name; others match the slash
// separated path relative to root.
func Included(root, path string, include []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range include {
		name := rel
		if !strings.Contains(pattern, "/") {
			name = base
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
