package source

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// JSONReader reads resources from a JSON object. String members are
// textual resources; an object with "type", "value" and an optional
// "comment" describes any other resource. Objects with other members are
// rejected.
type JSONReader struct {
	Types *resource.TypeTable
}

func (r *JSONReader) Read(ctx context.Context, in io.Reader) (*resource.Set, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json source")
	}

	lines := newLineIndex(src)
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()

	malformed := func(err error) error {
		pos := lines.position(int(dec.InputOffset()))
		return errors.Wrapf(errors.ErrUnsupportedFormat, "at %s: %v", pos, err)
	}

	tok, err := dec.Token()
	if err == io.EOF {
		return resource.NewSet(), nil
	}
	if err != nil {
		return nil, malformed(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Wrap(errors.ErrUnsupportedFormat, "expected an object of resources")
	}

	set := resource.NewSet()
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		keyOffset := skipSeparators(src, int(dec.InputOffset()))
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		key, _ := tok.(string)
		pos := lines.position(keyOffset)
		if err := checkKey(key, pos); err != nil {
			return nil, err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed(err)
		}

		e, err := r.entry(key, raw, pos)
		if err != nil {
			return nil, err
		}
		if err := set.Add(e); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed(err)
	}
	return set, nil
}

func (r *JSONReader) entry(key string, raw json.RawMessage, pos resource.Position) (resource.Entry, error) {
	e := resource.Entry{Key: key, Position: pos}
	invalid := func(err error) error {
		return errors.Wrapf(errors.ErrUnsupportedFormat, "%q at %s: %v", key, pos, err)
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return e, invalid(err)
		}
		e.Type, e.Value = resource.String, resource.Text(s)
	case '{':
		var s typedValue
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return e, errors.WithHintf(invalid(err),
				"typed resources take only %s", strings.Join(typedFields, ", "))
		}
		return s.entry(key, r.Types, pos)
	case 't', 'f':
		e.Type, e.Value = resource.Boolean, resource.Text(string(raw))
	case 'n':
		e.Type = resource.Void
	case '[':
		e.Type, e.Value = resource.Object, resource.Text(string(raw))
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return e, invalid(err)
		}
		e.Type = resource.Double
		if _, err := n.Int64(); err == nil {
			e.Type = resource.Int64
		}
		e.Value = resource.Text(n.String())
	}
	return e, nil
}

// skipSeparators advances offset past whitespace and the member separator
// the decoder has not consumed yet
func skipSeparators(src []byte, offset int) int {
	for offset < len(src) {
		switch src[offset] {
		case ' ', '\t', '\r', '\n', ',', ':':
			offset++
		default:
			return offset
		}
	}
	return offset
}
