package main

import (
	"os"

	"github.com/ecoyoung/packform/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
