// Package main is the entry point for the datalist CLI binary.
package main

import (
	"os"

	cli "datalist/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
