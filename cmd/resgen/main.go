package main

import (
	"os"

	"github.com/teranos/resgen/cmd/resgen/commands"
	"github.com/teranos/resgen/display"
	"github.com/teranos/resgen/logger"
)

func main() {
	err := commands.RootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		display.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
