// Package main provides the pathknn CLI.
//
// Usage:
//
//	pathknn [flags] <command> [args]
//
// Commands:
//
//	classify  - classify report embeddings against slide embeddings
//	inspect   - show the first records of both datasets
//	neighbors - rank stored slides for one embedding with SQL
//	results   - print a stored classification run
package main

import (
	"fmt"
	"os"

	"github.com/viant/pathknn/cmd/pathknn/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
