package main

import (
	"github.com/raykavin/toppairs"
	"github.com/raykavin/toppairs/pkg/config"
	"github.com/raykavin/toppairs/pkg/report"
	"github.com/raykavin/toppairs/pkg/watchlist"
	"github.com/spf13/cobra"
)

func buildListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the pairs stored in the watchlist",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	path := cfg.Watchlist.File
	if outputFile != "" {
		path = outputFile
	}

	pairs, err := watchlist.New(path, watchlist.WithLogger(toppairs.DefaultLog)).Pairs()
	if err != nil {
		return err
	}

	report.RenderWatchlist(cmd.OutOrStdout(), pairs)
	return nil
}
