// Package main is the entry point for fleximart-etl.
package main

import (
	"fmt"
	"os"

	"github.com/fleximart/fleximart-etl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
