// Package main is the entry point for the devlog server.
package main

import (
	"os"

	"github.com/donaldgifford/devlog/cmd/devlog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
