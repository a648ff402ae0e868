package main

import (
	"os"

	"github.com/openf1-tools/f1arc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
