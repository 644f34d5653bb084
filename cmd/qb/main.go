// Package main provides a CLI rendering and executing qb statements
// described in YAML files.
//
// Usage:
//
//	qb [flags] render FILE
//	qb [flags] exec FILE
//
// The exec command reads the database connection from qb.yaml or the
// QB_* environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
