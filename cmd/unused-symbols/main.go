// Command unused-symbols lists functions that are referenced only by their
// own declaration. It is equivalent to `deadscan symbols`.
package main

import "github.com/mvp-joe/deadscan/internal/cli"

func main() {
	cli.ExecuteCommand("symbols")
}
