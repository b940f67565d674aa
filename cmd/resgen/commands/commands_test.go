package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/errors"
)

// resetState clears flag values and config left over from a previous execution
func resetState() {
	config.Reset()
	configPath = ""
	verbosity = 0
	generateLanguage, generateNamespace, generateOutput = "", "", ""
	generateInternal, generateForce, generateNoCache, generateNoHooks = false, false, false, false
	generateWPF, generateInclude = false, nil
	initForce, initLanguage = false, ""
	unchange := func(f *pflag.Flag) { f.Changed = false }
	RootCmd.PersistentFlags().VisitAll(unchange)
	for _, cmd := range RootCmd.Commands() {
		cmd.Flags().VisitAll(unchange)
	}
}

// execute runs the root command with args from a clean state
func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetState()
	t.Cleanup(resetState)
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func TestInitGenerateCheck(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, config.ProjectConfigFile)
	source := filepath.Join(dir, "Strings.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"Hello": "hi", "Count": {"type": "int", "value": "3"}}`), 0644))

	require.NoError(t, execute(t, "init", dir))
	assert.FileExists(t, cfgFile)

	err := execute(t, "init", dir)
	require.Error(t, err, "init must not overwrite without --force")

	err = execute(t, "check", "--config", cfgFile, "-i", "*.json", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfDate))

	require.NoError(t, execute(t, "generate", "--config", cfgFile, "--no-cache", "-i", "*.json", "-n", "App", dir))
	assert.FileExists(t, filepath.Join(dir, "Strings.Properties.cs"))
	assert.FileExists(t, filepath.Join(dir, "Strings.Designer.cs"))

	require.NoError(t, execute(t, "check", "--config", cfgFile, "-i", "*.json", "-n", "App", dir))

	err = execute(t, "check", "--config", cfgFile, "-i", "*.json", "-n", "Other", dir)
	assert.True(t, errors.Is(err, errors.ErrOutOfDate), "namespace change must make outputs stale")
}

func TestGenerate_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, config.ProjectConfigFile)
	c := config.Default()
	c.Generate.Include = []string{"*.json"}
	require.NoError(t, config.Save(c, cfgFile))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Good.json"), []byte(`{"A": "a"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.json"), []byte(`{"A": "a", "a": "b"}`), 0644))

	err := execute(t, "generate", "--config", cfgFile, "--no-cache", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.FileExists(t, filepath.Join(dir, "Good.Properties.cs"), "a failing source does not stop the others")
}

func TestGenerate_SkipsUnrelatedDataFiles(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, config.ProjectConfigFile)
	require.NoError(t, config.Save(config.Default(), cfgFile))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "app", "scripts": {"build": "tsc"}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(`{"compilerOptions": {}}`), 0644))

	require.NoError(t, execute(t, "generate", "--config", cfgFile, "--no-cache", "-l", "ts", dir))
	assert.NoFileExists(t, filepath.Join(dir, "package.Properties.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "tsconfig.Properties.ts"))
}

func TestProjectPath(t *testing.T) {
	t.Cleanup(func() { configPath = "" })

	configPath = filepath.Join("proj", config.ProjectConfigFile)
	assert.Equal(t, filepath.Join("proj", ".resgen", "cache.db"), projectPath(filepath.Join(".resgen", "cache.db")))
	assert.Equal(t, "", projectPath(""))

	abs, err := filepath.Abs("x")
	require.NoError(t, err)
	assert.Equal(t, abs, projectPath(abs))
}
