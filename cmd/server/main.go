package main

import (
	"os"

	"github.com/ecoyoung/packform/internal/cli"
)

// main runs the packform serve command. Flags such as --config and --debug are
// passed through unchanged.
func main() {
	args := append([]string{"serve"}, os.Args[1:]...)
	if err := cli.ExecuteArgs(args); err != nil {
		os.Exit(1)
	}
}
