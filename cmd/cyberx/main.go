// Package main is the entry point for the cyberx CLI.
package main

import (
	"os"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
