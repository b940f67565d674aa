// Package display renders generation results for the terminal and as JSON.
package display

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/resgen/errors"
)

// EnvJSON forces JSON output when set to a non-empty value other than "0"
const EnvJSON = "RESGEN_JSON"

// ShouldOutputJSON determines if a command should output JSON from its flags and environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return jsonFromEnv()
	}

	// Check if --json flag was explicitly set on the command
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return jsonFromEnv()
}

func jsonFromEnv() bool {
	v := os.Getenv(EnvJSON)
	return v != "" && v != "0"
}

// OutputJSON marshals v and writes it to w followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write JSON")
	}
	return nil
}
