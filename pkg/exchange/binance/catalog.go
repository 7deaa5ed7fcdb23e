package binance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/storage"
)

type fetchFunc func(ctx context.Context) ([]core.Market, error)

// Catalog is the Binance market catalog. Markets are kept in an in-memory
// store keyed by "BASE/QUOTE".
type Catalog struct {
	config Config
	fetch  fetchFunc
	store  *storage.MarketStore
	log    logger.Logger

	mu     sync.RWMutex
	loaded bool
}

func newCatalog(log logger.Logger, config Config, fetch fetchFunc) (*Catalog, error) {
	store, err := storage.FromMemory()
	if err != nil {
		return nil, err
	}

	return &Catalog{
		config: config,
		fetch:  fetch,
		store:  store,
		log:    log,
	}, nil
}

// LoadMarkets downloads the exchange symbols and replaces the stored markets.
// Any failure is returned wrapped in core.ErrCatalogLoad.
func (c *Catalog) LoadMarkets(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	markets, err := c.fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: binance %s: %w", core.ErrCatalogLoad, c.config.Type, err)
	}

	if c.config.ActiveOnly {
		markets = activeMarkets(markets)
	}

	if err := c.store.Reset(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrCatalogLoad, err)
	}
	if err := c.store.Put(markets...); err != nil {
		return fmt.Errorf("%w: %w", core.ErrCatalogLoad, err)
	}
	c.loaded = true

	stored, err := c.store.Len()
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrCatalogLoad, err)
	}

	c.log.WithFields(map[string]any{
		"market":  c.config.Type,
		"markets": stored,
	}).Info("[SETUP] Loaded Binance markets")

	return nil
}

// Pairs returns the key set of the loaded markets
func (c *Catalog) Pairs() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, core.ErrCatalogNotLoaded
	}
	return c.store.Pairs()
}

// PairsByQuote returns the loaded pairs quoted in quote, served by the
// quote asset index
func (c *Catalog) PairsByQuote(quote string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, core.ErrCatalogNotLoaded
	}
	return c.store.PairsByQuote(strings.ToUpper(strings.TrimSpace(quote)))
}

// Close releases the market store
func (c *Catalog) Close() error {
	return c.store.Close()
}

func newMarket(symbol, base, quote, status string) core.Market {
	return core.Market{
		Pair:       core.NewPair(base, quote),
		Symbol:     symbol,
		BaseAsset:  base,
		QuoteAsset: quote,
		Status:     status,
	}
}

func activeMarkets(markets []core.Market) []core.Market {
	active := markets[:0]
	for _, market := range markets {
		if market.IsTrading() {
			active = append(active, market)
		}
	}
	return active
}
