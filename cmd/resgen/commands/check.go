package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/display"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/generate"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [files or directories...]",
	Short: "Verify generated files are up to date",
	Long: `Generate into a temporary directory and compare with the files on disk.

Exits non-zero when an accessors file differs or a file that generate would
write is missing. Container files are only checked for existence since they
belong to the user once written. Nothing is written.

Examples:
  resgen check           # every source under the current directory
  resgen check --json    # machine-readable result for CI`,
	RunE: runCheck,
}

func init() {
	addGenerateFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	inputs, err := inputsFromArgs(args, c)
	if err != nil {
		return err
	}

	var results []*generate.CheckResult
	stale := 0
	for _, input := range inputs {
		result, err := generate.Check(cmd.Context(), generate.Request{Input: input, Config: c})
		if err != nil {
			return errors.Wrapf(err, "failed to check %s", input)
		}
		if !result.UpToDate {
			stale++
		}
		results = append(results, result)
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			display.PrintCheck(os.Stdout, r)
		}
	}

	if stale > 0 {
		return errors.WithHint(
			errors.Wrapf(errors.ErrOutOfDate, "%d of %d sources", stale, len(inputs)),
			"run 'resgen generate' and commit the result")
	}
	return nil
}
