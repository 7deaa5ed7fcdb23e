// Package toppairs keeps a watchlist of exchange pairs for the top ranked
// coins by market capitalization.
package toppairs

import (
	"context"
	"fmt"
	"strings"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/exchange"
	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/marketdata/coinmarketcap"
	"github.com/raykavin/toppairs/pkg/matcher"
	"github.com/raykavin/toppairs/pkg/watchlist"
)

// DefaultLimit is the number of pairs matched per run
const DefaultLimit = 120

// Report describes the outcome of a run
type Report struct {
	Fetched  int                // Fetched is the number of ranked coins received
	Matched  []core.TradingPair // Matched holds the pairs found on the exchange, in rank order
	Added    []core.TradingPair // Added holds the pairs appended to the watchlist
	Existing int                // Existing is the size of the watchlist before the run

	// Coins maps every matched pair to its ranking entry
	Coins map[core.TradingPair]core.CoinRecord
}

// Syncer fetches the ranking, matches it against the exchange markets and
// appends the new pairs to the watchlist.
type Syncer struct {
	fetcher   core.RankingFetcher
	catalog   core.MarketCatalog
	watchlist core.Watchlist

	request     core.ListingsRequest
	limit       int
	quote       string
	stablecoins core.StablecoinSet
	notifiers   []core.Notifier
	log         logger.Logger
}

// NewSyncer creates a syncer with the default ranking request and limits
func NewSyncer(fetcher core.RankingFetcher, catalog core.MarketCatalog, watchlist core.Watchlist,
	options ...Option) *Syncer {

	s := &Syncer{
		fetcher:     fetcher,
		catalog:     catalog,
		watchlist:   watchlist,
		request:     coinmarketcap.DefaultRequest(),
		limit:       DefaultLimit,
		quote:       core.DefaultQuote,
		stablecoins: core.DefaultStablecoinSet(),
		log:         DefaultLog,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Run performs one sync. The watchlist is only written when new pairs were
// found, so running it again with the same inputs adds nothing.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	coins, err := s.fetcher.Listings(ctx, s.request)
	if err != nil {
		return nil, fmt.Errorf("fetch ranking: %w", err)
	}
	s.log.Debugf("Fetched %d ranked coins", len(coins))

	if err := s.catalog.LoadMarkets(ctx); err != nil {
		return nil, err
	}
	pairs, err := s.quotePairs()
	if err != nil {
		return nil, err
	}
	bases := exchange.BaseAssets(pairs, s.quote)

	matches := matcher.Matches(coins, bases, matcher.Options{
		Limit:       s.limit,
		Quote:       s.quote,
		Stablecoins: s.stablecoins,
	})

	report := &Report{
		Fetched: len(coins),
		Matched: make([]core.TradingPair, 0, len(matches)),
		Coins:   make(map[core.TradingPair]core.CoinRecord, len(matches)),
	}
	for _, match := range matches {
		report.Matched = append(report.Matched, match.Pair)
		report.Coins[match.Pair] = match.Coin
	}

	stored, err := s.watchlist.Load()
	if err != nil {
		return nil, err
	}
	existing := watchlist.Members(stored)
	report.Existing = len(existing)

	report.Added = matcher.Diff(report.Matched, existing)
	if len(report.Added) == 0 {
		s.log.Info("No new pairs to add.")
		return report, nil
	}

	if err := s.watchlist.Append(report.Added); err != nil {
		return nil, err
	}
	s.log.Infof("Added %d new pairs to %s", len(report.Added), s.watchlist.Path())

	s.notify(report.Added)

	return report, nil
}

// quotePairs lists the catalog pairs, narrowed to the quote asset when the
// catalog is indexed by quote
func (s *Syncer) quotePairs() ([]string, error) {
	if catalog, ok := s.catalog.(core.QuoteCatalog); ok {
		return catalog.PairsByQuote(s.quote)
	}
	return s.catalog.Pairs()
}

func (s *Syncer) notify(added []core.TradingPair) {
	if len(s.notifiers) == 0 {
		return
	}

	text := fmt.Sprintf("Added %d new pairs: %s", len(added), strings.Join(core.PairStrings(added), ", "))
	for _, notifier := range s.notifiers {
		notifier.Notify(text)
	}
}
