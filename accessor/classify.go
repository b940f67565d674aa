package accessor

import (
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// Kind is the value category of a resource; it selects the retrieval method
type Kind int

const (
	KindTextual Kind = iota + 1
	KindBinary
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindTextual:
		return "textual"
	case KindBinary:
		return "binary"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// RetrievalMethod is the resource-manager method an accessor of this kind calls.
// Generic accessors cast the result to their declared type.
func (k Kind) RetrievalMethod() string {
	switch k {
	case KindTextual:
		return "GetString"
	case KindBinary:
		return "GetStream"
	default:
		return "GetObject"
	}
}

// NeedsCast reports whether the retrieval result must be cast to the declared type
func (k Kind) NeedsCast() bool {
	return k == KindGeneric
}

// Classify returns the kind of t and the type an accessor declares for it.
// In-memory streams are declared as unmanaged memory streams; other types are
// declared as their nearest public ancestor.
func Classify(t *resource.Type) (Kind, *resource.Type, error) {
	switch {
	case t == nil:
		return 0, nil, errors.Wrap(errors.ErrUnclassifiableType, "no type information")
	case t.Is(resource.String):
		return KindTextual, resource.String, nil
	case t.Is(resource.MemoryStream), t.Is(resource.UnmanagedMemoryStream):
		return KindBinary, resource.UnmanagedMemoryStream, nil
	}

	declared := t.PublicAncestor()
	if declared == nil {
		return 0, nil, errors.Wrapf(errors.ErrUnclassifiableType, "%s has no public ancestor", t.Name)
	}
	return KindGeneric, declared, nil
}
