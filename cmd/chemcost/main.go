// Package main is the entry point for the chemcost CLI.
package main

import (
	"os"

	"chemcost/cmd/chemcost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
