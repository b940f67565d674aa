package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/errors"
)

var (
	initForce    bool
	initLanguage string
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a resgen.toml with the defaults",
	Long: `Write resgen.toml with every setting at its default value.

An existing file is only replaced with --force; the replaced file is kept as
resgen.toml.back1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	InitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing resgen.toml")
	InitCmd.Flags().StringVarP(&initLanguage, "language", "l", "", "Output language to configure")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.ProjectConfigFile)

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"use --force to overwrite it")
	}

	c := config.Default()
	if initLanguage != "" {
		c.Generate.Language = initLanguage
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := config.Save(c, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
