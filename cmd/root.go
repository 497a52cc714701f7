package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deedflow/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "deedflow",
	Short: "deedflow - digitizes recorded assignment and release instruments",
	Long: `deedflow pulls scanned instrument images referenced in a MongoDB
collection, runs OCR over them, cleans each page's text with a completion
model, extracts the final assignment and final release field sets, and
writes everything back to the document record.

Run "deedflow serve" for the HTTP surface plus the recurring batch trigger,
or "deedflow process" for a single synchronous pass.`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
