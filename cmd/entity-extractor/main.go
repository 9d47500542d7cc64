// Package main provides the CLI entrypoint for entity-extractor.
//
// entity-extractor turns a type model into an entity/relationship graph:
//   - module scans Go packages
//   - namespace scans a single Go package, possibly a dependency
//   - schema reads a YAML, JSON or TOML schema file
//   - describe writes the type descriptors of Go packages as a schema file
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
