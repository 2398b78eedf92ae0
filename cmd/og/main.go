package main

import (
	"os"

	"github.com/mlenoir/octogym-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
