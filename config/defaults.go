package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/resgen/target"
)

// File names and locations
const (
	ProjectConfigFile = "resgen.toml"
	UserConfigDir     = ".resgen"
	UserConfigFile    = "config.toml"
	EnvPrefix         = "RESGEN"

	DefaultDirPermissions  = 0o750
	DefaultFilePermissions = 0o644
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("min_version", "")

	v.SetDefault("generate.language", "csharp")
	v.SetDefault("generate.namespace", "")
	v.SetDefault("generate.class_modifier", ModifierPublic)
	v.SetDefault("generate.designer", true)
	v.SetDefault("generate.output_dir", "")
	v.SetDefault("generate.strict_types", false)
	v.SetDefault("generate.wpf", false)
	v.SetDefault("generate.include", []string{})

	decl := target.DefaultDeclaration()
	v.SetDefault("declaration.resource_manager_property", decl.ResourceManagerProperty)
	v.SetDefault("declaration.culture_property", decl.CultureProperty)
	v.SetDefault("declaration.resource_manager_field", decl.ResourceManagerField)
	v.SetDefault("declaration.culture_field", decl.CultureField)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", ".resgen/cache.db")

	v.SetDefault("watch.debounce_ms", 300)         // Editors write in bursts
	v.SetDefault("watch.max_runs_per_minute", 30) // Bounds regeneration on noisy trees

	v.SetDefault("hooks.post_generate", "")
}

// Default returns the configuration with every default applied
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal; failing here is a programming error
		panic(err)
	}
	return cfg
}
