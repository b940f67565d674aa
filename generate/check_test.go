package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeSource(t, dir, "Strings.json", `{"Hello": "hi"}`)
	cfg := testConfig("csharp")
	props := filepath.Join(dir, "Strings.Properties.cs")
	designer := filepath.Join(dir, "Strings.Designer.cs")

	result, err := Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.ElementsMatch(t, []string{props, designer}, result.Missing)

	_, err = Run(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)

	result, err = Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Empty(t, result.Differences)

	// a user-edited container file is not a difference
	require.NoError(t, os.WriteFile(designer, []byte("// mine\n"), 0644))
	result, err = Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	writeSource(t, dir, "Strings.json", `{"Hello": "hi", "Bye": "bye"}`)
	result, err = Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{props}, result.Differences)

	// check never writes
	body, err := os.ReadFile(props)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"Bye"`)
}

func TestCheck_Localized(t *testing.T) {
	input := writeSource(t, t.TempDir(), "Strings.de.json", `{"Hello": "Hallo"}`)

	result, err := Check(context.Background(), testRequest(t, input, testConfig("csharp")))
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Equal(t, SkipLocalized, result.Skipped)
}

func TestCheck_WPFCompanionMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeSource(t, dir, "Strings.json", `{"Hello": "hi"}`)
	cfg := testConfig("csharp")
	cfg.Generate.WPF = true

	_, err := Run(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	result, err := Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	dict := filepath.Join(dir, "StringsResourceDictionary.xaml")
	require.NoError(t, os.Remove(dict))
	result, err = Check(ctx, testRequest(t, input, cfg))
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{dict}, result.Missing)
	assert.Empty(t, result.Differences)
}
