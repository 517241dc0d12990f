package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/fundctl/internal/fund"
	"github.com/altuslabsxyz/fundctl/internal/output"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the dashboard live",
		Long: `Render the dashboard and keep refreshing it in the background until
interrupted. The refresh interval is taken from the configuration
(refresh_interval, default 30s).

Examples:
  # Watch with the configured interval
  fundctl watch`,
		RunE: runWatch,
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := newConsole()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := log.NewLogger(os.Stderr)
	if !verbose {
		logger = log.NewNopLogger()
	}

	refresher := fund.NewRefresher(c.reader, c.store, c.cfg.RefreshInterval, logger)
	refresher.OnUpdate = func(snap *fund.Snapshot) {
		// Each refresh owns its snapshot; render whatever arrived last.
		clearScreen()
		renderDashboard(c, snap)
		output.Info("\nRefreshing every %s. Press Ctrl+C to stop.", c.cfg.RefreshInterval)
	}

	if err := refresher.Start(ctx); err != nil {
		output.Warn("Initial refresh failed: %v", err)
		output.Info("Retrying every %s...", c.cfg.RefreshInterval)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	// Teardown: stop the timer before leaving so no callback outlives us.
	refresher.Stop()
	output.Info("\nStopped.")

	return nil
}

func clearScreen() {
	if !jsonMode {
		// ANSI clear + home.
		os.Stdout.WriteString("\033[2J\033[H")
	}
}
