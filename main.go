package main

import (
	"fmt"
	"os"

	"github.com/Dresse/eksponent-test/cmd"
	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/logging"
)

func main() {
	// Initialize logging before anything else so startup errors are captured
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("Error loading settings", "error", err)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
