package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"deedflow/internal/config"
	"deedflow/internal/logger"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run a single batch pass over pending documents",
	Long: `Queries the collection for documents whose status is notprocessed,
processing, or failed, and runs each through OCR, correction, and metadata
extraction. Exits when the pass completes.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	processor, st, err := buildProcessor(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to close document store")
		}
	}()

	return processor.ProcessPending(ctx)
}

func init() {
	rootCmd.AddCommand(processCmd)
}
