// Command unused-files lists source files that no entry point imports.
// It is equivalent to `deadscan files`.
package main

import "github.com/mvp-joe/deadscan/internal/cli"

func main() {
	cli.ExecuteCommand("files")
}
