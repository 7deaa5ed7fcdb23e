package core

import (
	"context"

	"github.com/StudioSol/set"
)

// RankingFetcher returns coins ordered by the provider's ranking.
type RankingFetcher interface {
	Listings(ctx context.Context, req ListingsRequest) ([]CoinRecord, error)
}

// MarketCatalog is an exchange market catalog keyed by "BASE/QUOTE".
// LoadMarkets must be called before Pairs.
type MarketCatalog interface {
	LoadMarkets(ctx context.Context) error
	Pairs() ([]string, error)
}

// QuoteCatalog is a MarketCatalog that can list the pairs of one quote asset
// without scanning every market.
type QuoteCatalog interface {
	MarketCatalog
	PairsByQuote(quote string) ([]string, error)
}

// Watchlist is the persisted, append-only list of discovered pairs.
// Load returns the pairs already stored, in file order.
type Watchlist interface {
	Load() (*set.LinkedHashSetString, error)
	Append(pairs []TradingPair) error
	Path() string
}

type Notifier interface {
	Notify(text string)
}

// ListingsRequest holds the query parameters of a ranking request.
type ListingsRequest struct {
	Start   int    // Start rank offset, 1 based
	Limit   int    // Limit of coins to return
	Convert string // Convert is the currency used for quote values
	Sort    string // Sort field, e.g. market_cap
	SortDir string // SortDir is asc or desc
}
