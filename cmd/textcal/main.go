// Package main is the entry point for the textcal CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/textcal/textcal/cmd/textcal/commands"
)

func main() {
	// Load API keys from a local .env when present; real environment
	// variables win.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
