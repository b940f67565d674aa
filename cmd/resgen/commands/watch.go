package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/display"
	"github.com/teranos/resgen/logger"
	"github.com/teranos/resgen/watch"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [directories...]",
	Short: "Regenerate when resource files change",
	Long: `Generate once, then watch the directories and regenerate each source
when it changes. Changes to resgen.toml regenerate everything with the
settings in effect at startup. Press Ctrl+C to stop.

Examples:
  resgen watch              # watch the current directory
  resgen watch res/ -l go   # watch res/ generating Go`,
	RunE: runWatch,
}

func init() {
	addGenerateFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openCache(c)
	if store != nil {
		defer store.Close()
	}

	regenerate := func(ctx context.Context, inputs []string) {
		reports, failed := generateAll(ctx, c, store, inputs, false, false)
		for _, r := range reports {
			if display.ShouldOutputJSON(cmd) {
				_ = display.OutputJSON(os.Stdout, r)
			} else {
				display.PrintReport(os.Stdout, r)
			}
		}
		if failed > 0 {
			logger.Warnw("Generation failed", logger.FieldCount, failed)
		}
	}

	inputs, err := inputsFromArgs(dirs, c)
	if err != nil {
		return err
	}
	regenerate(ctx, inputs)

	opts := watch.OptionsFromConfig(c, dirs)
	w, err := watch.New(opts, regenerate)
	if err != nil {
		return err
	}

	logger.Infow("Watching for changes", "dirs", dirs)
	return w.Run(ctx)
}
