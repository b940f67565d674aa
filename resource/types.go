package resource

import "strings"

// Type is a node in the static type DAG. Base is nil only for the root.
type Type struct {
	Name   string
	Public bool
	Base   *Type
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// Is reports whether t and other name the same type
func (t *Type) Is(other *Type) bool {
	return t != nil && other != nil && t.Name == other.Name
}

// PublicAncestor walks t and its base chain and returns the first publicly
// visible type, or nil when the chain never reaches one.
func (t *Type) PublicAncestor() *Type {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Public {
			return cur
		}
	}
	return nil
}

// Well-known types. Names follow the runtime's fully-qualified spelling
// because they end up in generated documentation comments.
var (
	Object                = &Type{Name: "System.Object", Public: true}
	ValueType             = &Type{Name: "System.ValueType", Public: true, Base: Object}
	String                = &Type{Name: "System.String", Public: true, Base: Object}
	Void                  = &Type{Name: "System.Void", Public: true, Base: ValueType}
	Boolean               = &Type{Name: "System.Boolean", Public: true, Base: ValueType}
	Char                  = &Type{Name: "System.Char", Public: true, Base: ValueType}
	Byte                  = &Type{Name: "System.Byte", Public: true, Base: ValueType}
	Int16                 = &Type{Name: "System.Int16", Public: true, Base: ValueType}
	Int32                 = &Type{Name: "System.Int32", Public: true, Base: ValueType}
	Int64                 = &Type{Name: "System.Int64", Public: true, Base: ValueType}
	Single                = &Type{Name: "System.Single", Public: true, Base: ValueType}
	Double                = &Type{Name: "System.Double", Public: true, Base: ValueType}
	Decimal               = &Type{Name: "System.Decimal", Public: true, Base: ValueType}
	DateTime              = &Type{Name: "System.DateTime", Public: true, Base: ValueType}
	TimeSpan              = &Type{Name: "System.TimeSpan", Public: true, Base: ValueType}
	Guid                  = &Type{Name: "System.Guid", Public: true, Base: ValueType}
	Array                 = &Type{Name: "System.Array", Public: true, Base: Object}
	ByteArray             = &Type{Name: "System.Byte[]", Public: true, Base: Array}
	MarshalByRefObject    = &Type{Name: "System.MarshalByRefObject", Public: true, Base: Object}
	Stream                = &Type{Name: "System.IO.Stream", Public: true, Base: MarshalByRefObject}
	MemoryStream          = &Type{Name: "System.IO.MemoryStream", Public: true, Base: Stream}
	UnmanagedMemoryStream = &Type{Name: "System.IO.UnmanagedMemoryStream", Public: true, Base: Stream}
	Image                 = &Type{Name: "System.Drawing.Image", Public: true, Base: MarshalByRefObject}
	Bitmap                = &Type{Name: "System.Drawing.Bitmap", Public: true, Base: Image}
	Icon                  = &Type{Name: "System.Drawing.Icon", Public: true, Base: MarshalByRefObject}
	Color                 = &Type{Name: "System.Drawing.Color", Public: true, Base: ValueType}
)

var wellKnown = []*Type{
	Object, ValueType, String, Void, Boolean, Char, Byte, Int16, Int32, Int64,
	Single, Double, Decimal, DateTime, TimeSpan, Guid, Array, ByteArray,
	MarshalByRefObject, Stream, MemoryStream, UnmanagedMemoryStream,
	Image, Bitmap, Icon, Color,
}

// Short spellings accepted by the TOML, YAML and JSON readers.
var aliases = map[string]*Type{
	"object":   Object,
	"string":   String,
	"text":     String,
	"void":     Void,
	"null":     Void,
	"bool":     Boolean,
	"boolean":  Boolean,
	"char":     Char,
	"byte":     Byte,
	"short":    Int16,
	"int":      Int32,
	"int32":    Int32,
	"long":     Int64,
	"int64":    Int64,
	"float":    Single,
	"double":   Double,
	"decimal":  Decimal,
	"datetime": DateTime,
	"timespan": TimeSpan,
	"guid":     Guid,
	"bytes":    ByteArray,
	"binary":   ByteArray,
	"stream":   MemoryStream,
	"image":    Bitmap,
	"bitmap":   Bitmap,
	"icon":     Icon,
	"color":    Color,
}

// TypeTable resolves type names from resource sources to nodes of the DAG.
type TypeTable struct {
	types  map[string]*Type
	strict bool
}

// NewTypeTable creates a table preloaded with the well-known types.
// In strict mode names the table does not know resolve to nil.
func NewTypeTable(strict bool) *TypeTable {
	tt := &TypeTable{types: make(map[string]*Type, len(wellKnown)), strict: strict}
	for _, t := range wellKnown {
		tt.types[t.Name] = t
	}
	return tt
}

// Register adds t, replacing any type with the same name
func (tt *TypeTable) Register(t *Type) {
	tt.types[t.Name] = t
}

// Resolve maps a type name to a type. Assembly-qualified names
// ("System.Drawing.Bitmap, System.Drawing, Version=4.0.0.0") are accepted.
// An empty name resolves to nil.
func (tt *TypeTable) Resolve(name string) *Type {
	name = StripAssembly(name)
	if name == "" {
		return nil
	}
	if t, ok := tt.types[name]; ok {
		return t
	}
	if t, ok := aliases[strings.ToLower(name)]; ok {
		return t
	}
	if tt.strict {
		return nil
	}
	return &Type{Name: name, Public: true, Base: Object}
}

// StripAssembly removes the assembly part of an assembly-qualified type name.
// Commas nested in generic argument brackets are not separators.
func StripAssembly(name string) string {
	depth := 0
	for i, r := range name {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(name[:i])
			}
		}
	}
	return strings.TrimSpace(name)
}
