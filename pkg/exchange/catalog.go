package exchange

import (
	"context"
	"sync"

	"github.com/raykavin/toppairs/pkg/core"
)

// StaticCatalog is a market catalog over a fixed list of pairs. It is used
// offline and in tests in place of a live exchange.
type StaticCatalog struct {
	mu     sync.RWMutex
	source []string
	pairs  []string
	loaded bool
}

// NewStaticCatalog creates a catalog that will expose the given pair keys.
func NewStaticCatalog(pairs ...string) *StaticCatalog {
	return &StaticCatalog{source: pairs}
}

func (c *StaticCatalog) LoadMarkets(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pairs = append([]string(nil), c.source...)
	c.loaded = true
	return nil
}

func (c *StaticCatalog) Pairs() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, core.ErrCatalogNotLoaded
	}
	return append([]string(nil), c.pairs...), nil
}
