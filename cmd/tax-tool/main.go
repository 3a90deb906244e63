package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"tax-tool/internal/app"

	"github.com/joho/godotenv"
)

// main is the entry point of the application. Configuration comes from
// the environment; a .env file in the working directory is loaded first
// if present.
func main() {
	_ = godotenv.Load()

	runner := app.NewAppRunner()

	err := runner.Run(os.Args[1:])
	if err != nil {
		log.Printf("[ERROR] Tax submission failed: %v", err)
		if errors.Is(err, app.ErrUsage) {
			fmt.Fprintln(os.Stderr, "")
			runner.Usage(os.Stderr)
		}
		os.Exit(1)
	}
}
