package accessor

import (
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// Options configure one Build call
type Options struct {
	Oracle   Oracle
	Reserved ReservedNames
}

// Descriptor is one accessor to emit
type Descriptor struct {
	Identifier string
	// ResourceKey is the lookup key embedded in the retrieval call
	ResourceKey string
	Kind        Kind
	// DeclaredType is the type the accessor exposes
	DeclaredType *resource.Type
	// StoredType is the type the source declared
	StoredType *resource.Type
	// Doc is the formatted, escaped documentation text
	Doc      string
	Position resource.Position
}

// Unresolved is a key that produced no accessor
type Unresolved struct {
	Key        string
	Reason     Reason
	Identifier string
	Position   resource.Position
}

// Result is the output of Build: accessors sorted by identifier under
// case-insensitive ordinal order and the keys that could not be emitted.
type Result struct {
	Accessors  []Descriptor
	Unresolved []Unresolved
	Table      *NameTable
}

// Build resolves names, classifies every surviving entry and returns the
// emit-ready accessor list. Per-resource problems land in Result.Unresolved;
// only a malformed request returns an error.
func Build(set *resource.Set, opts Options) (*Result, error) {
	if set == nil {
		return nil, errors.NewInvalidRequestError("nil resource set")
	}
	if opts.Oracle == nil {
		return nil, errors.NewInvalidRequestError("no identifier oracle")
	}

	table := Resolve(set, opts.Oracle, opts.Reserved)
	result := &Result{Table: table}

	for _, r := range table.Rejections() {
		e, _ := set.Get(r.Key)
		result.Unresolved = append(result.Unresolved, Unresolved{
			Key:        r.Key,
			Reason:     r.Reason,
			Identifier: r.Identifier,
			Position:   e.Position,
		})
	}

	for _, id := range table.Identifiers() {
		e, _ := table.Entry(id)

		kind, declared, err := Classify(e.Type)
		if err != nil {
			result.Unresolved = append(result.Unresolved, Unresolved{
				Key:        e.Key,
				Reason:     ReasonUnclassifiable,
				Identifier: id,
				Position:   e.Position,
			})
			continue
		}

		result.Accessors = append(result.Accessors, Descriptor{
			Identifier:   id,
			ResourceKey:  table.ResourceKey(id),
			Kind:         kind,
			DeclaredType: declared,
			StoredType:   e.Type,
			Doc:          documentation(kind, e),
			Position:     e.Position,
		})
	}

	return result, nil
}

// documentation renders the comment for an accessor. Textual accessors show a
// preview of the value; others show the stored type name and, when it says
// something more, the value preview.
func documentation(kind Kind, e resource.Entry) string {
	preview := FormatComment(e.Value)

	if kind == KindTextual {
		text := ""
		if preview != nil {
			text = *preview
		}
		return Message(MsgStringProperty, text)
	}

	typeName := e.Type.Name
	typeDoc := *FormatComment(&typeName)
	if preview == nil || *preview == typeDoc {
		return Message(MsgNonStringProperty, typeDoc)
	}
	return Message(MsgNonStringPropertyDetail, typeDoc, *preview)
}

// Diagnostics converts the unresolved keys into warnings
func (r *Result) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Unresolved))
	for _, u := range r.Unresolved {
		d := Diagnostic{Severity: SeverityWarning, Key: u.Key, Position: u.Position}
		switch u.Reason {
		case ReasonCollision:
			d.Code = CodeCollision
			d.Message = Message(MsgCollidingProperty, u.Key, u.Identifier)
		case ReasonUnclassifiable:
			d.Code = CodeUnclassifiable
			d.Message = Message(MsgUnclassifiableProperty, u.Key)
		default:
			d.Code = CodeUnresolvable
			d.Message = Message(MsgCannotCreateProperty, u.Key)
		}
		out = append(out, d)
	}
	return out
}

// ErrorKeys lists every key that produced no accessor, in report order
func (r *Result) ErrorKeys() []string {
	keys := make([]string, len(r.Unresolved))
	for i, u := range r.Unresolved {
		keys[i] = u.Key
	}
	return keys
}
