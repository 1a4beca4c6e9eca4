// Package main is the entry point for the talentboard CLI binary.
package main

import (
	"os"

	cli "talentboard/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
