package main

import (
	"os"

	"github.com/BrandonKowalski/navshell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
