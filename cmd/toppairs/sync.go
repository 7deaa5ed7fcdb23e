package main

import (
	"fmt"

	"github.com/raykavin/toppairs"
	"github.com/raykavin/toppairs/pkg/config"
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/exchange/binance"
	"github.com/raykavin/toppairs/pkg/marketdata/coinmarketcap"
	"github.com/raykavin/toppairs/pkg/notification"
	"github.com/raykavin/toppairs/pkg/report"
	"github.com/raykavin/toppairs/pkg/watchlist"
	"github.com/spf13/cobra"
)

func buildSyncCmd() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Append the new top pairs to the watchlist",
		Args:  cobra.NoArgs,
		RunE:  runSync,
	}

	addSyncFlags(syncCmd)

	return syncCmd
}

func addSyncFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&limit, "limit", "l", toppairs.DefaultLimit, "Maximum number of pairs matched per run")
	cmd.Flags().IntVar(&fetchLimit, "fetch-limit", 300, "Number of ranked coins requested")
	cmd.Flags().StringVar(&convert, "convert", "USD", "Currency of the ranking quotes")
	cmd.Flags().StringVar(&sortField, "sort", "market_cap", "Ranking field")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "desc", "Ranking direction (asc or desc)")
	cmd.Flags().StringVar(&market, "market", string(binance.MarketTypeSpot), "Binance market (spot or futures)")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Only match symbols currently trading")
	cmd.Flags().BoolVar(&showTable, "table", false, "Print the added pairs as a table")
}

func runSync(cmd *cobra.Command, _ []string) error {
	log := toppairs.DefaultLog

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.HasPlaceholderKey() {
		log.Warn("CMC_API_KEY is not set, requests will use a placeholder key")
	}

	fetcher := coinmarketcap.NewClient(cfg.CMC.APIKey,
		coinmarketcap.WithBaseURL(cfg.CMC.BaseURL),
		coinmarketcap.WithTimeout(cfg.CMC.Timeout),
		coinmarketcap.WithLogger(log),
	)

	catalog, err := binance.NewCatalog(log, binance.Config{
		Type:       cfg.Binance.Market,
		ActiveOnly: cfg.Binance.ActiveOnly,
		UseTestnet: cfg.Binance.UseTestnet,
		BaseURL:    cfg.Binance.BaseURL,
		Timeout:    cfg.CMC.Timeout,
	})
	if err != nil {
		return err
	}
	defer catalog.Close()

	options := []toppairs.Option{
		toppairs.WithLimit(cfg.Watchlist.Limit),
		toppairs.WithFetchLimit(cfg.CMC.Request.Limit),
		toppairs.WithConvert(cfg.CMC.Request.Convert),
		toppairs.WithSort(cfg.CMC.Request.Sort),
		toppairs.WithSortDir(cfg.CMC.Request.SortDir),
		toppairs.WithQuote(cfg.Watchlist.Quote),
		toppairs.WithStablecoins(cfg.Watchlist.Stablecoins...),
		toppairs.WithLogger(log),
	}

	notifiers, err := buildNotifiers(cfg)
	if err != nil {
		return err
	}
	for _, notifier := range notifiers {
		options = append(options, toppairs.WithNotifier(notifier))
	}

	list := watchlist.New(cfg.Watchlist.File, watchlist.WithLogger(log))
	result, err := toppairs.NewSyncer(fetcher, catalog, list, options...).Run(cmd.Context())
	if err != nil {
		return err
	}

	if showTable && len(result.Added) > 0 {
		rows := report.Rows(result.Added, result.Coins)
		out := cmd.OutOrStdout()
		report.RenderPairs(out, rows, cfg.CMC.Request.Convert)
		fmt.Fprint(out, report.Summarize(rows, cfg.CMC.Request.Convert).String())
	}

	return nil
}

// loadConfig reads the configuration and applies the flags set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if outputFile != "" {
		cfg.Watchlist.File = outputFile
	}
	if flags.Changed("limit") {
		cfg.Watchlist.Limit = limit
	}
	if flags.Changed("fetch-limit") {
		cfg.CMC.Request.Limit = fetchLimit
	}
	if flags.Changed("convert") {
		cfg.CMC.Request.Convert = convert
	}
	if flags.Changed("sort") {
		cfg.CMC.Request.Sort = sortField
	}
	if flags.Changed("sort-dir") {
		cfg.CMC.Request.SortDir = sortDir
	}
	if flags.Changed("market") {
		cfg.Binance.Market = binance.MarketType(market)
	}
	if flags.Changed("active-only") {
		cfg.Binance.ActiveOnly = activeOnly
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildNotifiers(cfg *config.Config) ([]core.Notifier, error) {
	var notifiers []core.Notifier

	if cfg.Telegram.Enabled {
		telegram, err := notification.NewTelegram(cfg.Telegram.Token, cfg.Telegram.Users,
			notification.WithLogger(toppairs.DefaultLog))
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, telegram)
	}

	if cfg.Mail.Enabled {
		notifiers = append(notifiers, notification.NewMail(notification.MailParams{
			SMTPServerPort:    cfg.Mail.Port,
			SMTPServerAddress: cfg.Mail.Server,
			To:                cfg.Mail.To,
			From:              cfg.Mail.From,
			Password:          cfg.Mail.Password,
			Logger:            toppairs.DefaultLog,
		}))
	}

	return notifiers, nil
}
