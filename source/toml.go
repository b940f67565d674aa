package source

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// TOMLReader reads resources from a TOML document. Top-level string keys
// are textual resources; a table with "type" and "value" describes any
// other resource. Other scalars are typed after their TOML type.
type TOMLReader struct {
	Types *resource.TypeTable
}

func (r *TOMLReader) Read(ctx context.Context, in io.Reader) (*resource.Set, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read toml source")
	}

	var doc map[string]toml.Primitive
	md, err := toml.Decode(string(src), &doc)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, errors.WithDetailf(
				errors.Wrap(errors.ErrUnsupportedFormat, perr.Message),
				"at line %d", perr.Position.Line)
		}
		return nil, errors.Wrap(errors.ErrUnsupportedFormat, err.Error())
	}

	locate := newTOMLLocator(src)
	set := resource.NewSet()

	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := key[0]
		pos := locate(name)
		if err := checkKey(name, pos); err != nil {
			return nil, err
		}

		e, err := r.entry(md, doc[name], name, pos)
		if err != nil {
			return nil, err
		}
		if err := set.Add(e); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (r *TOMLReader) entry(md toml.MetaData, prim toml.Primitive, name string, pos resource.Position) (resource.Entry, error) {
	e := resource.Entry{Key: name, Position: pos}

	switch md.Type(name) {
	case "String":
		var s string
		if err := md.PrimitiveDecode(prim, &s); err != nil {
			return e, errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: %v", name, pos, err)
		}
		e.Type, e.Value = resource.String, resource.Text(s)
		return e, nil

	case "Hash", "Inline Table":
		var fields []string
		for _, k := range md.Keys() {
			if len(k) >= 2 && k[0] == name {
				fields = append(fields, k[1])
			}
		}
		if err := checkTypedFields(name, pos, fields); err != nil {
			return e, err
		}
		var s typedValue
		if err := md.PrimitiveDecode(prim, &s); err != nil {
			return e, errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: %v", name, pos, err)
		}
		return s.entry(name, r.Types, pos)
	}

	var v interface{}
	if err := md.PrimitiveDecode(prim, &v); err != nil {
		return e, errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: %v", name, pos, err)
	}
	e.Type, e.Value = scalarType(v)
	return e, nil
}

// scalarType types a decoded TOML scalar and renders its preview
func scalarType(v interface{}) (*resource.Type, *string) {
	switch x := v.(type) {
	case bool:
		return resource.Boolean, resource.Text(strconv.FormatBool(x))
	case int64:
		return resource.Int64, resource.Text(strconv.FormatInt(x, 10))
	case float64:
		return resource.Double, resource.Text(strconv.FormatFloat(x, 'g', -1, 64))
	case time.Time:
		return resource.DateTime, resource.Text(x.Format(time.RFC3339))
	default:
		return resource.Object, resource.Text(fmt.Sprint(x))
	}
}

// newTOMLLocator returns a function finding the line on which a top-level
// key is defined, either as "key = ..." or as a "[key]" table header.
func newTOMLLocator(src []byte) func(key string) resource.Position {
	lines := strings.Split(string(src), "\n")
	return func(key string) resource.Position {
		quoted := regexp.QuoteMeta(key)
		forms := `(` + quoted + `|"` + quoted + `"|'` + quoted + `')`
		assign := regexp.MustCompile(`^(\s*)` + forms + `\s*=`)
		header := regexp.MustCompile(`^(\s*)\[\s*` + forms + `\s*\]`)

		table := false
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if m := header.FindStringSubmatchIndex(line); m != nil {
				return resource.Position{Line: i + 1, Column: m[3] + 1}
			}
			if strings.HasPrefix(trimmed, "[") {
				table = true
			}
			if table {
				continue
			}
			if m := assign.FindStringSubmatchIndex(line); m != nil {
				return resource.Position{Line: i + 1, Column: m[3] + 1}
			}
		}
		return resource.Position{}
	}
}
