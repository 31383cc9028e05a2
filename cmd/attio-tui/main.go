package main

import (
	"os"

	"github.com/attio-tui/attio-tui/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
