package storage

import (
	"encoding/json"
	"fmt"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/tidwall/buntdb"
)

const quoteIndex = "quote_index"

// MarketStore keeps exchange markets in a BuntDB database, keyed by pair,
// with a secondary index on the quote asset.
type MarketStore struct {
	db *buntdb.DB
}

// FromMemory creates an in-memory market store
func FromMemory() (*MarketStore, error) {
	return NewMarketStore(":memory:")
}

// NewMarketStore opens a BuntDB database at path and prepares the indexes
func NewMarketStore(path string) (*MarketStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	err = db.CreateIndex(quoteIndex, "*", buntdb.IndexJSON("quote_asset"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MarketStore{db: db}, nil
}

// Put stores the markets, replacing entries with the same pair
func (s *MarketStore) Put(markets ...core.Market) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		for _, market := range markets {
			if market.Pair == "" {
				return fmt.Errorf("%w: market %q has no pair", core.ErrInvalidPair, market.Symbol)
			}

			content, err := json.Marshal(market)
			if err != nil {
				return fmt.Errorf("failed to marshal market: %w", err)
			}

			if _, _, err := tx.Set(string(market.Pair), string(content), nil); err != nil {
				return fmt.Errorf("failed to store market %s: %w", market.Pair, err)
			}
		}
		return nil
	})
}

// Reset removes every stored market
func (s *MarketStore) Reset() error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		return tx.DeleteAll()
	})
	if err != nil {
		return fmt.Errorf("failed to reset markets: %w", err)
	}
	return nil
}

// Pairs returns every stored pair in key order
func (s *MarketStore) Pairs() ([]string, error) {
	pairs := make([]string, 0)
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys("*", func(key, _ string) bool {
			pairs = append(pairs, key)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over markets: %w", err)
	}
	return pairs, nil
}

// PairsByQuote returns the pairs whose quote asset equals quote
func (s *MarketStore) PairsByQuote(quote string) ([]string, error) {
	pivot := fmt.Sprintf(`{"quote_asset":%q}`, quote)

	pairs := make([]string, 0)
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendEqual(quoteIndex, pivot, func(key, _ string) bool {
			pairs = append(pairs, key)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query markets by quote: %w", err)
	}
	return pairs, nil
}

// Len returns the number of stored markets
func (s *MarketStore) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}

// Close closes the database
func (s *MarketStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
