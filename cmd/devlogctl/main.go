// Package main is the entry point for the devlogctl CLI client.
package main

import (
	"github.com/donaldgifford/devlog/cmd/devlogctl/cmd"
)

func main() {
	cmd.Execute()
}
