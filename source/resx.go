package source

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

// ResX type names with special meaning
const (
	resxFileRef = "System.Resources.ResXFileRef"
	resxNullRef = "System.Resources.ResXNullRef"

	mimeByteArray = "application/x-microsoft.net.object.bytearray.base64"
)

// ResXReader reads .resx XML resource files
type ResXReader struct {
	Types *resource.TypeTable
	// BaseDir resolves relative file references; empty means the working directory
	BaseDir string
}

type resxData struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	MimeType string `xml:"mimetype,attr"`
	Value    string `xml:"value"`
	Comment  string `xml:"comment"`
}

// Read parses every <data> element. <resheader>, <metadata> and
// <assembly> elements carry no resources and are skipped.
func (r *ResXReader) Read(ctx context.Context, in io.Reader) (*resource.Set, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read resx source")
	}

	lines := newLineIndex(src)
	dec := xml.NewDecoder(bytes.NewReader(src))
	set := resource.NewSet()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := dec.InputPos()
			return nil, errors.WithDetailf(
				errors.Wrap(errors.ErrUnsupportedFormat, err.Error()),
				"at %d:%d", line, col)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "data" {
			continue
		}

		pos := lines.position(elementStart(src, int(dec.InputOffset())))
		var data resxData
		if err := dec.DecodeElement(&data, &start); err != nil {
			return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "malformed <data> at %s: %v", pos, err)
		}
		if err := checkKey(data.Name, pos); err != nil {
			return nil, err
		}
		if err := set.Add(r.entry(data, pos)); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (r *ResXReader) entry(data resxData, pos resource.Position) resource.Entry {
	e := resource.Entry{Key: data.Name, Comment: data.Comment, Position: pos}
	typeName := resource.StripAssembly(data.Type)

	switch {
	case typeName == resxFileRef:
		// value is "path;type[;encoding]"
		parts := strings.Split(data.Value, ";")
		if len(parts) >= 2 {
			e.Type = r.Types.Resolve(parts[1])
		}
		if e.Type.Is(resource.String) {
			e.Value = r.readTextRef(parts)
		}
	case typeName == resxNullRef:
		e.Type = resource.Object
	case data.MimeType != "":
		switch {
		case data.Type != "":
			e.Type = r.Types.Resolve(data.Type)
		case data.MimeType == mimeByteArray:
			e.Type = resource.ByteArray
		}
	case data.Type == "":
		e.Type = resource.String
		e.Value = resource.Text(data.Value)
	default:
		e.Type = r.Types.Resolve(data.Type)
		e.Value = resource.Text(data.Value)
	}
	return e
}

// readTextRef returns the contents of a text file reference decoded with
// its declared encoding, or nil when the file cannot be read
func (r *ResXReader) readTextRef(parts []string) *string {
	path := strings.Trim(strings.TrimSpace(parts[0]), `"`)
	path = filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.BaseDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	if len(parts) >= 3 {
		if enc, err := htmlindex.Get(strings.TrimSpace(parts[2])); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
				raw = decoded
			}
		}
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	return resource.Text(string(raw))
}

// elementStart finds the '<' opening the element whose start tag ends just
// before offset
func elementStart(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	if i := bytes.LastIndexByte(src[:offset], '<'); i >= 0 {
		return i
	}
	return offset
}
