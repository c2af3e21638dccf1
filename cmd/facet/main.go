// Package main is the entry point for the facet CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/facet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
