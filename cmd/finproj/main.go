// Command finproj projects a personal financial profile forward in time.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the process environment still applies
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
