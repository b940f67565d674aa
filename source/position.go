package source

import (
	"sort"
	"unicode/utf8"

	"github.com/teranos/resgen/resource"
)

// lineIndex converts byte offsets into 1-based line/column positions.
// Columns count characters, not bytes.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (li *lineIndex) position(offset int) resource.Position {
	if offset < 0 || offset > len(li.src) {
		return resource.Position{}
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	col := utf8.RuneCount(li.src[li.starts[line]:offset]) + 1
	return resource.Position{Line: line + 1, Column: col}
}
