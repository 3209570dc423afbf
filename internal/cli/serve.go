package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techimg/hippo-tracker/internal/ingest"
)

var serveConfig string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to collector YAML config")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the telemetry collector",
	Long:  "Runs the HTTP collector that receives, validates, and stores telemetry\nrecords. The bearer token hot-reloads when the config file changes.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := ingest.LoadConfig(serveConfig)
	if err != nil {
		return err
	}

	srv, err := ingest.New(cfg, serveConfig)
	if err != nil {
		return fmt.Errorf("create collector: %w", err)
	}

	reloader, err := ingest.NewReloader(srv, serveConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down collector...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "hippo collector listening on %s\n", cfg.Listen)
	fmt.Fprintf(os.Stderr, "events database: %s\n", cfg.DBPath)
	if serveConfig != "" {
		fmt.Fprintf(os.Stderr, "config: %s (hot-reload enabled)\n", serveConfig)
	}

	return srv.Serve()
}
