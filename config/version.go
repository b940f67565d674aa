package config

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/resgen/errors"
)

// CheckVersion fails when current is older than the configured min_version.
// Development builds whose version is not semver are always accepted.
func (c *Config) CheckVersion(current string) error {
	return CheckVersion(c.MinVersion, current)
}

// CheckVersion compares current against minimum
func CheckVersion(minimum, current string) error {
	if minimum == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return errors.Wrapf(err, "invalid min_version %q", minimum)
	}

	v, err := semver.NewVersion(current)
	if err != nil {
		return nil
	}

	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrOutOfDate, "resgen %s is older than the required %s", v, minimum),
			"upgrade resgen or lower min_version in %s", ProjectConfigFile)
	}
	return nil
}
