package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/toppairs"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Command line flags
var (
	// Shared flags
	configFile string
	outputFile string

	// Sync command flags
	limit      int
	fetchLimit int
	convert    string
	sortField  string
	sortDir    string
	market     string
	activeOnly bool
	showTable  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create root command, it runs a sync when no sub command is given
	rootCmd := &cobra.Command{
		Use:           "toppairs",
		Short:         "Keep a watchlist of Binance pairs for the top coins by market cap",
		Version:       version,
		RunE:          runSync,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ./toppairs.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "file", "f", "", "Watchlist file (default top_pairs.txt)")
	addSyncFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(buildSyncCmd())
	rootCmd.AddCommand(buildListCmd())

	// Execute
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		toppairs.DefaultLog.WithError(err).Error("toppairs failed")
		stop()
		os.Exit(1)
	}
}
