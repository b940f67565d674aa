package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/resgen/errors"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user or project files
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "csharp", cfg.Generate.Language)
	assert.Equal(t, ModifierPublic, cfg.Generate.ClassModifier)
	assert.True(t, cfg.Generate.Designer)
	assert.Equal(t, "ResourceManager", cfg.Declaration.ResourceManagerProperty)
	assert.Equal(t, "resourceCulture", cfg.Declaration.CultureField)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Watch.DebounceMS)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	content := `
min_version = "0.1.0"

[generate]
language = "go"
namespace = "My.App"
class_modifier = "internal"
wpf = true
include = ["**/*.res.json", "i18n/*.yaml"]

[declaration]
culture_property = "Locale"

[watch]
debounce_ms = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", cfg.MinVersion)
	assert.Equal(t, "go", cfg.Generate.Language)
	assert.Equal(t, "My.App", cfg.Generate.Namespace)
	assert.True(t, cfg.Generate.Internal())
	assert.True(t, cfg.Generate.WPF)
	assert.Equal(t, []string{"**/*.res.json", "i18n/*.yaml"}, cfg.Generate.Include)
	assert.Equal(t, "Locale", cfg.Declaration.CultureProperty)
	assert.Equal(t, "ResourceManager", cfg.Declaration.ResourceManagerProperty, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Watch.DebounceMS)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("[generate]\nlanguage = \"go\"\n"), 0o644))
	t.Setenv("RESGEN_GENERATE_LANGUAGE", "typescript")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "typescript", cfg.Generate.Language)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigFile), nil, 0o644))

	assert.Equal(t, filepath.Join(root, ProjectConfigFile), findProjectConfig(nested))
}

func TestMergeConfigFiles_Precedence(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(user, []byte("[generate]\nlanguage = \"go\"\nnamespace = \"User\"\n"), 0o644))
	require.NoError(t, os.WriteFile(project, []byte("[generate]\nnamespace = \"Project\"\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, user, project, filepath.Join(dir, "missing.toml"))

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Generate.Language)
	assert.Equal(t, "Project", cfg.Generate.Namespace)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"internal modifier", func(c *Config) { c.Generate.ClassModifier = ModifierInternal }, false},
		{"bad modifier", func(c *Config) { c.Generate.ClassModifier = "private" }, true},
		{"empty language", func(c *Config) { c.Generate.Language = "" }, true},
		{"empty field name", func(c *Config) { c.Declaration.CultureField = "" }, true},
		{"same properties", func(c *Config) { c.Declaration.CultureProperty = "ResourceManager" }, true},
		{"cache without path", func(c *Config) { c.Cache.Path = "" }, true},
		{"cache disabled without path", func(c *Config) { c.Cache.Enabled, c.Cache.Path = false, "" }, false},
		{"zero debounce", func(c *Config) { c.Watch.DebounceMS = 0 }, false},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, true},
		{"negative rate", func(c *Config) { c.Watch.MaxRunsPerMinute = -5 }, true},
		{"include patterns", func(c *Config) { c.Generate.Include = []string{"**/*.res.json", "i18n/*.{yaml,yml}"} }, false},
		{"bad include pattern", func(c *Config) { c.Generate.Include = []string{"[unclosed"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSave_RoundTripAndBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ProjectConfigFile)

	cfg := Default()
	cfg.Generate.Namespace = "First"
	require.NoError(t, Save(cfg, path))
	assert.NoFileExists(t, path+".back1")

	for _, ns := range []string{"Second", "Third", "Fourth", "Fifth"} {
		cfg.Generate.Namespace = ns
		require.NoError(t, Save(cfg, path))
	}

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Fifth", loaded.Generate.Namespace)
	assert.Equal(t, cfg.Declaration, loaded.Declaration)

	back1, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "Fourth", back1.Generate.Namespace)

	back3, err := LoadFromFile(path + ".back3")
	require.NoError(t, err)
	assert.Equal(t, "Second", back3.Generate.Namespace)
	assert.NoFileExists(t, path+".back4")

	assert.True(t, IsBackupFile(path+".back2"))
	assert.False(t, IsBackupFile(path))
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion("", "0.0.1"))
	assert.NoError(t, CheckVersion("1.2.0", "1.2.0"))
	assert.NoError(t, CheckVersion("1.2.0", "1.10.0"))
	assert.NoError(t, CheckVersion("1.2.0", "dev"), "non-semver builds are accepted")

	err := CheckVersion("1.2.0", "1.1.9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfDate))
	assert.NotEmpty(t, errors.GetAllHints(err))

	assert.Error(t, CheckVersion("not a version", "1.0.0"))
}

func TestLoad_Cached(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
