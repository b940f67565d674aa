package source

import (
	"context"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// YAMLReader reads resources from a YAML mapping. Scalars are typed after
// their resolved YAML tag; a mapping of "type", "value" and an optional
// "comment" describes any other resource. Head and line comments become resource comments.
type YAMLReader struct {
	Types *resource.TypeTable
}

// yamlTypes maps resolved scalar tags to resource types
var yamlTypes = map[string]*resource.Type{
	"!!str":       resource.String,
	"!!int":       resource.Int64,
	"!!float":     resource.Double,
	"!!bool":      resource.Boolean,
	"!!null":      resource.Void,
	"!!timestamp": resource.DateTime,
	"!!binary":    resource.ByteArray,
}

func (r *YAMLReader) Read(ctx context.Context, in io.Reader) (*resource.Set, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if err == io.EOF {
			return resource.NewSet(), nil
		}
		return nil, errors.Wrap(errors.ErrUnsupportedFormat, err.Error())
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat,
			"expected a mapping of resources at %d:%d", root.Line, root.Column)
	}

	set := resource.NewSet()
	for i := 0; i+1 < len(root.Content); i += 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		keyNode, valueNode := root.Content[i], root.Content[i+1]
		pos := resource.Position{Line: keyNode.Line, Column: keyNode.Column}
		if err := checkKey(keyNode.Value, pos); err != nil {
			return nil, err
		}

		e, err := r.entry(keyNode, valueNode, pos)
		if err != nil {
			return nil, err
		}
		if err := set.Add(e); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (r *YAMLReader) entry(keyNode, valueNode *yaml.Node, pos resource.Position) (resource.Entry, error) {
	key := keyNode.Value
	comment := firstNonEmpty(keyNode.HeadComment, keyNode.LineComment, valueNode.LineComment)

	switch valueNode.Kind {
	case yaml.ScalarNode:
		typ, known := yamlTypes[valueNode.ShortTag()]
		if !known {
			typ = r.Types.Resolve(strings.TrimLeft(valueNode.Tag, "!"))
		}
		e := resource.Entry{Key: key, Type: typ, Comment: trimComment(comment), Position: pos}
		if typ != resource.Void {
			e.Value = resource.Text(valueNode.Value)
		}
		return e, nil

	case yaml.MappingNode:
		fields := make([]string, 0, len(valueNode.Content)/2)
		for i := 0; i+1 < len(valueNode.Content); i += 2 {
			fields = append(fields, valueNode.Content[i].Value)
		}
		if err := checkTypedFields(key, pos, fields); err != nil {
			return resource.Entry{}, err
		}
		var s typedValue
		if err := valueNode.Decode(&s); err != nil {
			return resource.Entry{}, errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: %v", key, pos, err)
		}
		if s.Comment == "" {
			s.Comment = trimComment(comment)
		}
		return s.entry(key, r.Types, pos)
	}

	return resource.Entry{}, errors.Wrapf(errors.ErrUnsupportedFormat,
		"%q at %s: expected a scalar or a mapping with type and value", key, pos)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// trimComment strips the comment markers yaml.v3 keeps in comment text
func trimComment(c string) string {
	var out []string
	for _, line := range strings.Split(c, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
