package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/little-wizard/internal/metrics"
	"github.com/vovakirdan/little-wizard/internal/platform/tui"
)

var (
	flagHost        string
	flagPort        int
	flagHostKey     string
	flagMetricsAddr string
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a map picker.
Records are stored per-server (all players share the same database).

An HTTP endpoint serves /metrics (Prometheus), /healthz and /maps unless
--metrics-addr is empty.

Examples:
  wizard serve                        # Listen on 0.0.0.0:2222
  wizard serve --port 23234           # Another port
  wizard serve --host-key ./host_key  # Use a specific host key
  wizard serve --metrics-addr ""      # No HTTP endpoint

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Address to bind")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "SSH port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "HTTP metrics address")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Concurrent session limit (0 = unlimited)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = flagPort
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("metrics-addr") {
		cfg.Server.MetricsAddr = flagMetricsAddr
	}
	if flags.Changed("max-sessions") {
		cfg.Server.MaxSessions = flagMaxSessions
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	if cfg.Server.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Server.MetricsAddr, logger.WithPrefix("http")); err != nil {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}
	go func() {
		errCh <- server.ListenAndServe(ctx)
	}()

	fmt.Printf("Starting wizard SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	err = <-errCh
	stop()
	return err
}
