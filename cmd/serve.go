package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"deedflow/internal/config"
	"deedflow/internal/logger"
	"deedflow/internal/scheduler"
	"deedflow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and the recurring batch trigger",
	Long: `Starts the HTTP surface (GET / liveness probe, POST /process batch
trigger) together with a background scheduler that runs a batch pass on a
fixed interval. Blocks until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	go scheduler.New(cfg.ProcessInterval, processor).Run(ctx)

	srv := server.New(cfg.HTTPAddr, processor)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
