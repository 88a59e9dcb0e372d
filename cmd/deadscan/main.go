package main

import "github.com/mvp-joe/deadscan/internal/cli"

func main() {
	cli.Execute()
}
