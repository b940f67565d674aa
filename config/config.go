// Package config loads resgen settings from resgen.toml, the user config
// and RESGEN_ environment variables.
package config

import (
	"github.com/teranos/resgen/target"
)

// Config represents the resgen configuration
type Config struct {
	MinVersion  string             `mapstructure:"min_version" toml:"min_version,omitempty"`
	Generate    GenerateConfig     `mapstructure:"generate" toml:"generate"`
	Declaration target.Declaration `mapstructure:"declaration" toml:"declaration"`
	Cache       CacheConfig        `mapstructure:"cache" toml:"cache"`
	Watch       WatchConfig        `mapstructure:"watch" toml:"watch"`
	Hooks       HooksConfig        `mapstructure:"hooks" toml:"hooks"`
}

// GenerateConfig configures code generation
type GenerateConfig struct {
	Language      string `mapstructure:"language" toml:"language"`             // csharp, golang, typescript or an alias
	Namespace     string `mapstructure:"namespace" toml:"namespace"`           // empty = no namespace
	ClassModifier string `mapstructure:"class_modifier" toml:"class_modifier"` // public or internal
	Designer      bool   `mapstructure:"designer" toml:"designer"`             // write the container file when absent
	OutputDir     string `mapstructure:"output_dir" toml:"output_dir"`         // empty = next to the source
	StrictTypes   bool   `mapstructure:"strict_types" toml:"strict_types"`     // unknown type names are unclassifiable
	WPF           bool   `mapstructure:"wpf" toml:"wpf"`                       // C# only: write the XAML binding wrapper and resource dictionary

	// Include lists glob patterns selecting JSON, YAML and TOML sources when
	// walking directories. .resx files are always selected.
	Include []string `mapstructure:"include" toml:"include"`
}

// CacheConfig configures the generation run ledger
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS       int `mapstructure:"debounce_ms" toml:"debounce_ms"`
	MaxRunsPerMinute int `mapstructure:"max_runs_per_minute" toml:"max_runs_per_minute"` // 0 = unlimited
}

// HooksConfig configures commands run around generation
type HooksConfig struct {
	PostGenerate string `mapstructure:"post_generate" toml:"post_generate"` // shell-quoted command line
}

// Class modifiers
const (
	ModifierPublic   = "public"
	ModifierInternal = "internal"
)

// Internal reports whether generated classes are internal
func (g GenerateConfig) Internal() bool {
	return g.ClassModifier == ModifierInternal
}
