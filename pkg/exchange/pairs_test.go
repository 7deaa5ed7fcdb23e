package exchange

import (
	"context"
	"testing"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestBaseAssets(t *testing.T) {
	pairs := []string{"BTC/USDT", "eth/usdt", "ETH/BTC", "SOL/USDT:USDT", "BNBUSDT", "/USDT"}

	bases := BaseAssets(pairs, "usdt")
	require.Equal(t, map[string]struct{}{"BTC": {}, "ETH": {}}, bases)
}

func TestStaticCatalog(t *testing.T) {
	catalog := NewStaticCatalog("BTC/USDT", "ETH/USDT")

	_, err := catalog.Pairs()
	require.ErrorIs(t, err, core.ErrCatalogNotLoaded)

	require.NoError(t, catalog.LoadMarkets(context.Background()))
	pairs, err := catalog.Pairs()
	require.NoError(t, err)
	require.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, pairs)
}
