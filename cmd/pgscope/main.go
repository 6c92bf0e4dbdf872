// Package main provides the pgscope CLI.
package main

import (
	"os"

	"github.com/pgscope/pgscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
