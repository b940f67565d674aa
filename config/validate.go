package config

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/resgen/errors"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Generate.Language == "" {
		return errors.New("generate.language cannot be empty")
	}

	switch c.Generate.ClassModifier {
	case ModifierPublic, ModifierInternal:
	default:
		return errors.WithHint(
			errors.Newf("generate.class_modifier must be %q or %q, got %q",
				ModifierPublic, ModifierInternal, c.Generate.ClassModifier),
			"internal classes are visible to their own assembly or package only")
	}

	for _, pattern := range c.Generate.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.WithHint(
				errors.Newf("generate.include has an invalid pattern %q", pattern),
				"patterns use / as separator and support *, ** and {a,b}")
		}
	}

	d := c.Declaration
	for key, value := range map[string]string{
		"declaration.resource_manager_property": d.ResourceManagerProperty,
		"declaration.culture_property":          d.CultureProperty,
		"declaration.resource_manager_field":    d.ResourceManagerField,
		"declaration.culture_field":             d.CultureField,
	} {
		if value == "" {
			return errors.Newf("%s cannot be empty", key)
		}
	}
	if d.ResourceManagerProperty == d.CultureProperty {
		return errors.Newf("declaration properties must differ, both are %q", d.CultureProperty)
	}

	if c.Cache.Enabled && c.Cache.Path == "" {
		return errors.New("cache.path cannot be empty when the cache is enabled")
	}

	// 0 = no debounce, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	// 0 = unlimited, negative = invalid
	if c.Watch.MaxRunsPerMinute < 0 {
		return errors.Newf("watch.max_runs_per_minute must be >= 0, got %d", c.Watch.MaxRunsPerMinute)
	}

	return nil
}
