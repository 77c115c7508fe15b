// ShelfSort: board game shelf planner
//
// Places a collection of boxed board games onto a row of identical shelves,
// first-fit in collection order, standing, lying or either.
//
// Build:
//   go build -o shelfsort ./cmd/shelfsort
//
// Usage:
//   shelfsort sort [flags] games.csv|games.xlsx|collection.json
//   shelfsort compare [flags] games.csv
//   shelfsort presets [flags]
//   shelfsort serve [flags]

package main

import (
	"os"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
