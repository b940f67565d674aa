package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/cache"
	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/display"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/generate"
	"github.com/teranos/resgen/logger"
)

// keepRuns is how many runs per input the cache keeps after each invocation
const keepRuns = 5

var (
	generateLanguage  string
	generateNamespace string
	generateOutput    string
	generateInternal  bool
	generateWPF       bool
	generateInclude   []string
	generateForce     bool
	generateNoCache   bool
	generateNoHooks   bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [files or directories...]",
	Short: "Generate accessor files",
	Long: `Generate accessor files for resource sources.

Directories are searched recursively for .resx files and for the JSON,
YAML and TOML files matching generate.include or --include. Files named on
the command line are always used. Culture-specific satellites such as
Strings.fr-FR.resx are skipped; their neutral source generates the accessors.
The accessors file is rewritten on every run, the container file only when it
does not exist yet.

Examples:
  resgen generate                          # every source under the current directory
  resgen generate Strings.resx             # one source
  resgen generate -l ts -o src/gen res/    # TypeScript into src/gen
  resgen generate -i '**/*.res.json'       # also pick up JSON sources`,
	Aliases: []string{"gen"},
	RunE:    runGenerate,
}

func init() {
	addGenerateFlags(GenerateCmd)
	GenerateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "Regenerate even when outputs are up to date")
	GenerateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "Do not read or record the run cache")
	GenerateCmd.Flags().BoolVar(&generateNoHooks, "no-hooks", false, "Do not run the post-generate hook")
}

// addGenerateFlags adds the flags that override [generate] settings
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateLanguage, "language", "l", "", "Output language (csharp, golang, typescript or an alias)")
	cmd.Flags().StringVarP(&generateNamespace, "namespace", "n", "", "Namespace of the generated class")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: next to each source)")
	cmd.Flags().BoolVar(&generateInternal, "internal", false, "Generate internal instead of public classes")
	cmd.Flags().BoolVar(&generateWPF, "wpf", false, "C# only: also write the XAML binding wrapper and resource dictionary")
	cmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "Glob selecting JSON, YAML or TOML sources in directories (repeatable)")
}

// effectiveConfig applies command-line overrides to the loaded config
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	c := *cfg
	if cmd.Flags().Changed("language") {
		c.Generate.Language = generateLanguage
	}
	if cmd.Flags().Changed("namespace") {
		c.Generate.Namespace = generateNamespace
	}
	if cmd.Flags().Changed("output") {
		c.Generate.OutputDir = generateOutput
	} else {
		c.Generate.OutputDir = projectPath(c.Generate.OutputDir)
	}
	if generateInternal {
		c.Generate.ClassModifier = config.ModifierInternal
	}
	if generateWPF {
		c.Generate.WPF = true
	}
	if len(generateInclude) > 0 {
		c.Generate.Include = append(append([]string{}, c.Generate.Include...), generateInclude...)
	}
	c.Cache.Path = projectPath(c.Cache.Path)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// openCache opens the run cache when enabled. A cache that cannot be opened
// disables caching for this invocation.
func openCache(c *config.Config) *cache.Store {
	if !c.Cache.Enabled {
		return nil
	}
	store, err := cache.Open(c.Cache.Path)
	if err != nil {
		logger.Warnw("Cache unavailable, continuing without it", logger.FieldError, err)
		return nil
	}
	return store
}

func inputsFromArgs(args []string, c *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	return generate.Discover(args, c.Generate.Include)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	inputs, err := inputsFromArgs(args, c)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		logger.Warnw("No resource sources found")
		return nil
	}

	var store *cache.Store
	if !generateNoCache {
		store = openCache(c)
	}
	if store != nil {
		defer store.Close()
	}

	reports, failed := generateAll(cmd.Context(), c, store, inputs, generateForce, generateNoHooks)

	if store != nil {
		if _, err := store.Prune(cmd.Context(), keepRuns); err != nil {
			logger.Warnw("Failed to prune cache", logger.FieldError, err)
		}
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(os.Stdout, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			display.PrintReport(os.Stdout, r)
		}
	}

	if failed > 0 {
		return errors.Newf("generation failed for %d of %d sources", failed, len(inputs))
	}
	return nil
}

// generateAll runs every input and counts the failures. A failing input does
// not stop the others.
func generateAll(ctx context.Context, c *config.Config, store *cache.Store, inputs []string, force, noHooks bool) ([]*generate.Report, int) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]*generate.Report, 0, len(inputs))
	failed := 0
	for _, input := range inputs {
		report, err := generate.Run(ctx, generate.Request{
			Input:     input,
			Config:    c,
			Cache:     store,
			Force:     force,
			SkipHooks: noHooks,
		})
		if err != nil {
			failed++
			logger.Debugw("Generation failed", logger.FieldFile, input, logger.FieldError, err)
			if report == nil {
				report = &generate.Report{Input: input}
			}
			if !report.HasErrors() {
				report.Diagnostics = append(report.Diagnostics, errorDiagnostic(err))
			}
		}
		reports = append(reports, report)
	}
	return reports, failed
}
