// Package main runs a single draw from the terminal.
package main

import (
	"os"

	drawcmd "github.com/louisbranch/luckydraw/internal/cmd/draw"
	"github.com/louisbranch/luckydraw/internal/platform/config"
)

func main() {
	cmd := drawcmd.NewCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		config.ExitCodef(drawcmd.ExitCode(err), "draw: %v", err)
	}
}
