// Package main provides the quarry CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/quarry-labs/quarry/internal/cli"
)

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
