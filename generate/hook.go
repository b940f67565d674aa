package generate

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/logger"
)

// Environment passed to the post-generate hook
const (
	EnvHookInput   = "RESGEN_INPUT"
	EnvHookOutputs = "RESGEN_OUTPUTS"
)

// runHook runs the shell-quoted command line after outputs were written.
// Written paths are listed in RESGEN_OUTPUTS, separated by the OS path list separator.
func runHook(ctx context.Context, commandLine, input string, written []string) error {
	if strings.TrimSpace(commandLine) == "" {
		return nil
	}

	args, err := shellquote.Split(commandLine)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "invalid post-generate hook %q", commandLine),
			"check quoting in hooks.post_generate")
	}
	if len(args) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		EnvHookInput+"="+input,
		EnvHookOutputs+"="+strings.Join(written, string(os.PathListSeparator)),
	)

	log := logger.ComponentLogger("hook")
	log.Debugw("Running post-generate hook", "command", args[0], logger.FieldFile, input)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WithDetail(
			errors.Wrapf(err, "post-generate hook %s failed", args[0]),
			strings.TrimSpace(string(out)))
	}
	if len(out) > 0 {
		log.Debugw("Hook output", "output", strings.TrimSpace(string(out)))
	}
	return nil
}
