package accessor

import (
	"sort"
	"strings"

	"github.com/teranos/resgen/resource"
)

// Reason explains why a key produced no accessor
type Reason int

const (
	// ReasonUnresolvable means sanitization exhausted every strategy
	ReasonUnresolvable Reason = iota + 1
	// ReasonCollision means another key produced the same identifier
	ReasonCollision
	// ReasonUnclassifiable means the entry has no usable type
	ReasonUnclassifiable
)

func (r Reason) String() string {
	switch r {
	case ReasonUnresolvable:
		return "unresolvable"
	case ReasonCollision:
		return "collision"
	case ReasonUnclassifiable:
		return "unclassifiable"
	default:
		return "unknown"
	}
}

// ReservedNames are the accessor names the resource-access protocol declares
// itself. Keys equal to them are never user resources.
type ReservedNames struct {
	ResourceManager string
	Culture         string
}

// DefaultReservedNames matches the default container declaration
var DefaultReservedNames = ReservedNames{
	ResourceManager: "ResourceManager",
	Culture:         "Culture",
}

// IsControlKey reports whether an entry is a protocol-internal marker that is
// excluded silently: a reserved accessor name, a "no value" entry, or a key
// starting with "$" or ">>".
func (n ReservedNames) IsControlKey(e resource.Entry) bool {
	switch {
	case n.ResourceManager != "" && resource.EqualFold(e.Key, n.ResourceManager):
		return true
	case n.Culture != "" && resource.EqualFold(e.Key, n.Culture):
		return true
	case e.Type.Is(resource.Void):
		return true
	case strings.HasPrefix(e.Key, "$"), strings.HasPrefix(e.Key, ">>"):
		return true
	}
	return false
}

// Rejection records a key that was not resolved
type Rejection struct {
	Key    string
	Reason Reason
	// Identifier is the contested identifier for collisions
	Identifier string
}

// NameTable is the outcome of one resolution pass. All lookups are
// case-insensitive. A NameTable is never shared between runs.
type NameTable struct {
	// folded identifier -> declared identifier
	identifiers map[string]string
	// folded identifier -> entry occupying it
	occupants map[string]resource.Entry
	// folded identifier -> original key, only for sanitized keys
	reverseFixup map[string]string
	// folded key -> identifier, for surviving keys
	resolved map[string]string
	// folded key -> rejection
	rejected map[string]Rejection
	// folded identifiers that took part in a collision
	poisoned map[string]bool
	// folded keys skipped as control keys
	skipped map[string]bool
}

func newNameTable(size int) *NameTable {
	return &NameTable{
		identifiers:  make(map[string]string, size),
		occupants:    make(map[string]resource.Entry, size),
		reverseFixup: make(map[string]string),
		resolved:     make(map[string]string, size),
		rejected:     make(map[string]Rejection),
		poisoned:     make(map[string]bool),
		skipped:      make(map[string]bool),
	}
}

// Resolve assigns every non-control key either an identifier or a rejection.
func Resolve(set *resource.Set, oracle Oracle, reserved ReservedNames) *NameTable {
	t := newNameTable(set.Len())

	for _, e := range set.Entries() {
		if reserved.IsControlKey(e) {
			t.skipped[resource.Fold(e.Key)] = true
			continue
		}

		candidate := e.Key
		sanitized := false
		if !oracle.IsValidIdentifier(e.Key) {
			fixed, ok := Sanitize(e.Key, false, oracle)
			if !ok {
				t.reject(e.Key, ReasonUnresolvable, "")
				continue
			}
			candidate, sanitized = fixed, true
		}

		id := resource.Fold(candidate)
		if t.poisoned[id] {
			t.reject(e.Key, ReasonCollision, candidate)
			continue
		}

		if sanitized {
			if prior, ok := t.reverseFixup[id]; ok && !resource.EqualFold(prior, e.Key) {
				t.collide(id, e.Key, candidate)
				continue
			}
			t.reverseFixup[id] = e.Key
		}

		if prior, ok := t.occupants[id]; ok && !resource.EqualFold(prior.Key, e.Key) {
			t.collide(id, e.Key, candidate)
			continue
		}

		t.identifiers[id] = candidate
		t.occupants[id] = e
		t.resolved[resource.Fold(e.Key)] = candidate
	}

	return t
}

// collide evicts the current occupant of id and rejects both keys
func (t *NameTable) collide(id, key, candidate string) {
	if prior, ok := t.occupants[id]; ok {
		delete(t.occupants, id)
		delete(t.identifiers, id)
		delete(t.resolved, resource.Fold(prior.Key))
		t.reject(prior.Key, ReasonCollision, candidate)
	}
	delete(t.reverseFixup, id)
	t.poisoned[id] = true
	t.reject(key, ReasonCollision, candidate)
}

func (t *NameTable) reject(key string, reason Reason, identifier string) {
	t.rejected[resource.Fold(key)] = Rejection{Key: key, Reason: reason, Identifier: identifier}
}

// Identifiers returns the surviving identifiers in case-insensitive ordinal order
func (t *NameTable) Identifiers() []string {
	out := make([]string, 0, len(t.identifiers))
	for _, id := range t.identifiers {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return resource.CompareFold(out[i], out[j]) < 0
	})
	return out
}

// Entry returns the entry declared under identifier
func (t *NameTable) Entry(identifier string) (resource.Entry, bool) {
	e, ok := t.occupants[resource.Fold(identifier)]
	return e, ok
}

// ResourceKey returns the lookup key to embed for identifier: the original
// key when sanitization changed it, otherwise the identifier itself.
func (t *NameTable) ResourceKey(identifier string) string {
	if key, ok := t.reverseFixup[resource.Fold(identifier)]; ok {
		return key
	}
	return identifier
}

// Identifier returns the identifier resolved for key
func (t *NameTable) Identifier(key string) (string, bool) {
	id, ok := t.resolved[resource.Fold(key)]
	return id, ok
}

// Rejections returns rejected keys in canonical key order
func (t *NameTable) Rejections() []Rejection {
	out := make([]Rejection, 0, len(t.rejected))
	for _, r := range t.rejected {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return resource.CompareFold(out[i].Key, out[j].Key) < 0
	})
	return out
}

// ErrorKeys returns the rejected keys in canonical key order
func (t *NameTable) ErrorKeys() []string {
	rejections := t.Rejections()
	keys := make([]string, len(rejections))
	for i, r := range rejections {
		keys[i] = r.Key
	}
	return keys
}

// IsSkipped reports whether key was excluded as a control key
func (t *NameTable) IsSkipped(key string) bool {
	return t.skipped[resource.Fold(key)]
}
