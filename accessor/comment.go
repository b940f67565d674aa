package accessor

import "strings"

// DocCommentLengthThreshold is the longest text documented verbatim, in characters
const DocCommentLengthThreshold = 512

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// FormatComment bounds and escapes text for a documentation comment.
// nil stays nil. Text over the threshold is replaced by the truncation
// message built from its first 512 characters.
func FormatComment(text *string) *string {
	if text == nil {
		return nil
	}

	s := *text
	if runes := []rune(s); len(runes) > DocCommentLengthThreshold {
		s = Message(MsgStringPropertyTruncated, string(runes[:DocCommentLengthThreshold]))
	}
	s = markupEscaper.Replace(s)
	return &s
}

// EscapeComment escapes markup-significant characters without truncating
func EscapeComment(s string) string {
	return markupEscaper.Replace(s)
}
