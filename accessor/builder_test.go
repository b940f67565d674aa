package accessor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

var testOptions = Options{Oracle: testOracle{}, Reserved: DefaultReservedNames}

func TestBuild_SanitizedTextual(t *testing.T) {
	result, err := Build(newSet(t, text("Hello World", "Hi")), testOptions)
	require.NoError(t, err)
	require.Len(t, result.Accessors, 1)

	d := result.Accessors[0]
	assert.Equal(t, "Hello_World", d.Identifier)
	assert.Equal(t, "Hello World", d.ResourceKey)
	assert.Equal(t, KindTextual, d.Kind)
	assert.Same(t, resource.String, d.DeclaredType)
	assert.Equal(t, "Looks up a localized string similar to Hi.", d.Doc)
	assert.Empty(t, result.Unresolved)
}

func TestBuild_CollisionReportsBoth(t *testing.T) {
	result, err := Build(newSet(t, text("A.B", "1"), text("A_B", "2")), testOptions)
	require.NoError(t, err)

	assert.Empty(t, result.Accessors)
	assert.Equal(t, []string{"A.B", "A_B"}, result.ErrorKeys())

	diags := result.Diagnostics()
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, SeverityWarning, d.Severity)
		assert.Equal(t, CodeCollision, d.Code)
		assert.Contains(t, d.Message, "A_B")
	}
}

func TestBuild_MemoryStreamIsBinary(t *testing.T) {
	set := newSet(t, resource.Entry{Key: "Icon", Type: resource.MemoryStream})
	result, err := Build(set, testOptions)
	require.NoError(t, err)
	require.Len(t, result.Accessors, 1)

	d := result.Accessors[0]
	assert.Equal(t, KindBinary, d.Kind)
	assert.Equal(t, "System.IO.UnmanagedMemoryStream", d.DeclaredType.Name)
	assert.Equal(t, "Icon", d.ResourceKey)
	assert.Equal(t, "Looks up a localized resource of type System.IO.MemoryStream.", d.Doc)
}

func TestBuild_ControlKeySkippedSilently(t *testing.T) {
	result, err := Build(newSet(t, text("$this", "x"), text("Title", "T")), testOptions)
	require.NoError(t, err)

	require.Len(t, result.Accessors, 1)
	assert.Equal(t, "Title", result.Accessors[0].Identifier)
	assert.Empty(t, result.Unresolved)
	assert.Empty(t, result.Diagnostics())
}

func TestBuild_LongValueTruncatedInDoc(t *testing.T) {
	long := strings.Repeat("w", 600)
	result, err := Build(newSet(t, text("Essay", long)), testOptions)
	require.NoError(t, err)
	require.Len(t, result.Accessors, 1)

	doc := result.Accessors[0].Doc
	want := Message(MsgStringProperty, Message(MsgStringPropertyTruncated, strings.Repeat("w", DocCommentLengthThreshold)))
	assert.Equal(t, want, doc)
	assert.Equal(t, "Looks up a localized string similar to "+strings.Repeat("w", 512)+" [rest of string was truncated].", doc)
	assert.Greater(t, utf8.RuneCountInString(doc), DocCommentLengthThreshold)
}

func TestBuild_Deterministic(t *testing.T) {
	entries := []resource.Entry{
		text("Zeta", "z"),
		text("alpha", "a"),
		text("A.B", "1"),
		text("A_B", "2"),
		text("$this", "x"),
		text("class", "keyword"),
		{Key: "Mystery", Position: resource.Position{Line: 9, Column: 1}},
		{Key: "Icon", Type: resource.MemoryStream},
		{Key: "Count", Type: resource.Int32, Value: resource.Text("3")},
	}

	first, err := Build(newSet(t, entries...), testOptions)
	require.NoError(t, err)
	second, err := Build(newSet(t, entries...), testOptions)
	require.NoError(t, err)

	assert.Equal(t, first.Accessors, second.Accessors)
	assert.Equal(t, first.Unresolved, second.Unresolved)
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
	assert.NotEmpty(t, first.Accessors)
	assert.NotEmpty(t, first.Unresolved)

	// a second Build over the same set sees no state from the first
	set := newSet(t, entries...)
	again, err := Build(set, testOptions)
	require.NoError(t, err)
	repeat, err := Build(set, testOptions)
	require.NoError(t, err)
	assert.Equal(t, again.Accessors, repeat.Accessors)
	assert.Equal(t, again.Unresolved, repeat.Unresolved)
}

func TestBuild_GenericDocIncludesPreview(t *testing.T) {
	set := newSet(t,
		resource.Entry{Key: "Count", Type: resource.Int32, Value: resource.Text("42")},
		resource.Entry{Key: "Logo", Type: resource.Bitmap},
	)
	result, err := Build(set, testOptions)
	require.NoError(t, err)
	require.Len(t, result.Accessors, 2)

	count, logo := result.Accessors[0], result.Accessors[1]
	assert.Equal(t, "Looks up a localized resource of type System.Int32 similar to 42.", count.Doc)
	assert.Equal(t, KindGeneric, count.Kind)
	assert.Equal(t, "Looks up a localized resource of type System.Drawing.Bitmap.", logo.Doc)
}

func TestBuild_Unclassifiable(t *testing.T) {
	set := newSet(t, resource.Entry{Key: "Mystery", Position: resource.Position{Line: 7, Column: 3}})
	result, err := Build(set, testOptions)
	require.NoError(t, err)

	assert.Empty(t, result.Accessors)
	require.Len(t, result.Unresolved, 1)
	assert.Equal(t, ReasonUnclassifiable, result.Unresolved[0].Reason)

	diags := result.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUnclassifiable, diags[0].Code)
	assert.Equal(t, "7:3", diags[0].Position.String())
}

func TestBuild_SortedCaseInsensitively(t *testing.T) {
	result, err := Build(newSet(t, text("beta", "b"), text("Alpha", "a"), text("gamma", "g"), text("Delta", "d")), testOptions)
	require.NoError(t, err)

	var ids []string
	for _, d := range result.Accessors {
		ids = append(ids, d.Identifier)
	}
	assert.Equal(t, []string{"Alpha", "beta", "Delta", "gamma"}, ids)
}

func TestBuild_InvalidRequest(t *testing.T) {
	_, err := Build(nil, testOptions)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = Build(resource.NewSet(), Options{})
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer("Strings", "My.App", testOracle{})
	require.NoError(t, err)
	assert.Equal(t, "My.App.Strings", c.QualifiedName())

	c, err = NewContainer("Error Messages", "", testOracle{})
	require.NoError(t, err)
	assert.Equal(t, "Error_Messages", c.QualifiedName())

	_, err = NewContainer("€", "My.App", testOracle{})
	assert.True(t, errors.Is(err, errors.ErrInvalidIdentifier))

	_, err = NewContainer("Strings", "My..App", testOracle{})
	assert.True(t, errors.Is(err, errors.ErrInvalidIdentifier))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
