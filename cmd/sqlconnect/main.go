// Package main provides the sqlconnect CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlconnect/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
