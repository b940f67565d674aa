package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/display"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/logger"
	"github.com/teranos/resgen/version"
)

var (
	configPath string
	verbosity  int

	// cfg is loaded once per invocation by the root pre-run
	cfg *config.Config
)

// RootCmd is the resgen command
var RootCmd = &cobra.Command{
	Use:   "resgen",
	Short: "Generate strongly typed accessors for resource files",
	Long: `resgen - strongly typed resource accessors.

Reads resource files (ResX, TOML, YAML, JSON) and generates a class with one
accessor per resource, plus a container file holding the resource manager
and culture plumbing.

Available commands:
  generate - Generate accessor files
  check    - Verify generated files are up to date
  watch    - Regenerate when resource files change
  init     - Write a resgen.toml with the defaults
  version  - Show version information

Examples:
  resgen generate Resources/Strings.resx
  resgen generate -l go -n app.strings locales/
  resgen check .
  resgen watch Resources/`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(display.ShouldOutputJSON(cmd), verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		if cmd.Name() == "version" || cmd.Name() == "init" {
			return nil
		}
		return loadConfig()
	},
}

func init() {
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest resgen.toml)")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(VersionCmd)
}

func loadConfig() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.CheckVersion(version.Get().Version); err != nil {
		return err
	}

	logger.Debugw("Configuration loaded",
		"config", configFile(),
		logger.FieldLanguage, cfg.Generate.Language,
		"namespace", cfg.Generate.Namespace,
		"cache", cfg.Cache.Enabled)
	return nil
}

// configFile is the project config in effect, or "" when only defaults apply
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.ProjectConfigPath()
}

// projectPath resolves a configured relative path against the directory
// holding the config file, falling back to the working directory
func projectPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if file := configFile(); file != "" {
		return filepath.Join(filepath.Dir(file), path)
	}
	return path
}
