package main

import (
	"os"
)

// Set through -ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
