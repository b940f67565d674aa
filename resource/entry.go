package resource

import (
	"fmt"
	"sort"

	"github.com/teranos/resgen/errors"
)

// Position is a 1-based line/column location in the resource source.
// The zero value means "unknown".
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsKnown reports whether the position carries a real location
func (p Position) IsKnown() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsKnown() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Entry is one named, typed value to be exposed through a generated accessor.
type Entry struct {
	Key string
	// Type is nil when the source carried no usable type information
	Type *Type
	// Value is a textual rendering of the value used only for documentation
	Value    *string
	Comment  string
	Position Position
}

// Set is an unordered collection of entries keyed case-insensitively.
// A Set is built once per run and treated as immutable afterwards.
type Set struct {
	entries map[string]Entry
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{entries: make(map[string]Entry)}
}

// Add inserts e. Adding a key that equals an existing key ignoring case is a
// structural error that aborts the run.
func (s *Set) Add(e Entry) error {
	folded := Fold(e.Key)
	if prior, exists := s.entries[folded]; exists {
		return errors.WithDetailf(
			errors.Wrapf(errors.ErrDuplicateKey, "%q at %s", e.Key, e.Position),
			"first defined as %q at %s", prior.Key, prior.Position)
	}
	s.entries[folded] = e
	return nil
}

// Get looks up an entry by key, ignoring case
func (s *Set) Get(key string) (Entry, bool) {
	e, ok := s.entries[Fold(key)]
	return e, ok
}

// Len returns the number of entries
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns all entries in canonical order (see CompareFold).
// The order never depends on how the set was populated.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareFold(out[i].Key, out[j].Key) < 0
	})
	return out
}

// Text returns a pointer to s, for building entries with a value preview
func Text(s string) *string {
	return &s
}
