// Package main provides the CLI entrypoint for fluent-gen.
//
// fluent-gen works on type documents (YAML descriptions of TypeScript type
// trees) and exposes the generator core for inspection:
//   - render prints the TypeScript type string, optionally with builder unions
//   - find lists the nodes matching a kind/name query
//   - params lists generic parameters in dependency order
//   - dump prints the decoded tree
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
