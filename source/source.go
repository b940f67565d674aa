// Package source reads resource files into resource sets.
//
// Supported formats are picked by file extension: ResX (.resx), TOML
// (.toml), YAML (.yaml, .yml) and JSON (.json). Every reader attributes
// entries to the line and column where their key is defined so
// diagnostics can point at the source.
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// Reader parses one resource source
type Reader interface {
	Read(ctx context.Context, r io.Reader) (*resource.Set, error)
}

// Extensions lists every file extension a reader exists for
var Extensions = []string{".resx", ".toml", ".yaml", ".yml", ".json"}

// ForPath returns the reader for path's extension
func ForPath(path string, types *resource.TypeTable) (Reader, error) {
	if types == nil {
		types = resource.NewTypeTable(false)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".resx":
		return &ResXReader{Types: types, BaseDir: filepath.Dir(path)}, nil
	case ".toml":
		return &TOMLReader{Types: types}, nil
	case ".yaml", ".yml":
		return &YAMLReader{Types: types}, nil
	case ".json":
		return &JSONReader{Types: types}, nil
	}
	return nil, errors.WithHintf(
		errors.Wrapf(errors.ErrUnsupportedFormat, "%s", filepath.Base(path)),
		"supported extensions: %s", strings.Join(Extensions, ", "))
}

// IsSupported reports whether a reader exists for path
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFile opens path and reads it with the matching reader
func ReadFile(ctx context.Context, path string, types *resource.TypeTable) (*resource.Set, error) {
	reader, err := ForPath(path, types)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	set, err := reader.Read(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filepath.Base(path))
	}
	return set, nil
}

// typedValue is the structured form every text format accepts for a resource
// that is not a plain string
type typedValue struct {
	Type    string  `toml:"type" yaml:"type" json:"type"`
	Value   *string `toml:"value" yaml:"value" json:"value"`
	Comment string  `toml:"comment" yaml:"comment" json:"comment"`
}

// typedFields are the only members a typed resource object may carry
var typedFields = []string{"type", "value", "comment"}

func (s typedValue) entry(key string, types *resource.TypeTable, pos resource.Position) (resource.Entry, error) {
	if s.Type == "" && s.Value == nil {
		return resource.Entry{}, errors.WithHintf(
			errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: object has neither type nor value", key, pos),
			"typed resources take only %s", strings.Join(typedFields, ", "))
	}
	typ := resource.String
	if s.Type != "" {
		typ = types.Resolve(s.Type)
	}
	return resource.Entry{Key: key, Type: typ, Value: s.Value, Comment: s.Comment, Position: pos}, nil
}

// checkTypedFields rejects members of a typed resource object other than
// type, value and comment
func checkTypedFields(key string, pos resource.Position, fields []string) error {
	for _, f := range fields {
		if !slices.Contains(typedFields, f) {
			return errors.WithHintf(
				errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: unknown field %q", key, pos, f),
				"typed resources take only %s", strings.Join(typedFields, ", "))
		}
	}
	return nil
}

func checkKey(key string, pos resource.Position) error {
	if key == "" {
		return errors.Wrapf(errors.ErrUnsupportedFormat, "empty resource name at %s", pos)
	}
	return nil
}
