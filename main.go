// Package main is the entry point for the fieldpack packet layout tool.
package main

import (
	"fmt"
	"os"

	"firestige.xyz/fieldpack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
