package toppairs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/exchange"
	"github.com/raykavin/toppairs/pkg/exchange/binance"
	"github.com/raykavin/toppairs/pkg/logger/zerolog"
	"github.com/raykavin/toppairs/pkg/marketdata/coinmarketcap"
	"github.com/raykavin/toppairs/pkg/watchlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierMock struct {
	messages []string
}

func (n *notifierMock) Notify(text string) {
	n.messages = append(n.messages, text)
}

type failingCatalog struct{}

func (failingCatalog) LoadMarkets(context.Context) error {
	return fmt.Errorf("%w: boom", core.ErrCatalogLoad)
}

func (failingCatalog) Pairs() ([]string, error) {
	return nil, core.ErrCatalogNotLoaded
}

// quoteOnlyCatalog serves pairs only through the quote index
type quoteOnlyCatalog struct {
	byQuote map[string][]string
	quotes  []string
}

func (c *quoteOnlyCatalog) LoadMarkets(context.Context) error {
	return nil
}

func (c *quoteOnlyCatalog) Pairs() ([]string, error) {
	return nil, errors.New("full scan not expected")
}

func (c *quoteOnlyCatalog) PairsByQuote(quote string) ([]string, error) {
	c.quotes = append(c.quotes, quote)
	return c.byQuote[quote], nil
}

func listingsJSON(symbols ...string) string {
	items := make([]string, len(symbols))
	for i, symbol := range symbols {
		items[i] = fmt.Sprintf(
			`{"id": %d, "name": "%s", "symbol": "%s", "slug": "%s", "cmc_rank": %d, "quote": {"USD": {"price": 1, "market_cap": %d}}}`,
			i+1, symbol, symbol, strings.ToLower(symbol), i+1, 1000-i,
		)
	}
	return `{"status": {"error_code": 0}, "data": [` + strings.Join(items, ",") + `]}`
}

func cmcServer(t *testing.T, body string) *coinmarketcap.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return coinmarketcap.NewClient("test-key", coinmarketcap.WithBaseURL(server.URL))
}

func newTestSyncer(fetcher core.RankingFetcher, catalog core.MarketCatalog, path string, options ...Option) *Syncer {
	options = append([]Option{WithLogger(zerolog.NewNop())}, options...)
	return NewSyncer(fetcher, catalog, watchlist.New(path), options...)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Fields(string(content))
}

func TestSyncer_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	fetcher := cmcServer(t, listingsJSON("BTC", "USDT", "ETH", "XYZ", "SOL", "USDC", "DOGE"))
	catalog := exchange.NewStaticCatalog("BTC/USDT", "ETH/USDT", "SOL/USDT", "USDC/USDT", "DOGE/BTC", "ETH/BTC")
	notifier := &notifierMock{}

	syncer := newTestSyncer(fetcher, catalog, path, WithNotifier(notifier))

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, report.Fetched)
	assert.Equal(t, []core.TradingPair{"BTC/USDT", "ETH/USDT", "SOL/USDT"}, report.Matched)
	assert.Equal(t, report.Matched, report.Added)
	assert.Zero(t, report.Existing)
	assert.Equal(t, "ETH", report.Coins["ETH/USDT"].Symbol)

	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT", "SOL/USDT"}, readLines(t, path))
	assert.Equal(t, []string{"Added 3 new pairs: BTC/USDT, ETH/USDT, SOL/USDT"}, notifier.messages)

	t.Run("second run is a no-op", func(t *testing.T) {
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		report, err := syncer.Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, report.Added)
		assert.Equal(t, 3, report.Existing)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, notifier.messages, 1)
	})
}

func TestSyncer_RunAppendsOnlyNewPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("ETH/USDT\nADA/USDT\n"), 0o644))

	fetcher := cmcServer(t, listingsJSON("BTC", "ETH", "SOL"))
	catalog := exchange.NewStaticCatalog("BTC/USDT", "ETH/USDT", "SOL/USDT")

	report, err := newTestSyncer(fetcher, catalog, path).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Existing)
	assert.Equal(t, []core.TradingPair{"BTC/USDT", "SOL/USDT"}, report.Added)
	assert.Equal(t, []string{"ETH/USDT", "ADA/USDT", "BTC/USDT", "SOL/USDT"}, readLines(t, path))
}

func TestSyncer_RunLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	fetcher := cmcServer(t, listingsJSON("BTC", "ETH", "SOL", "BNB"))
	catalog := exchange.NewStaticCatalog("BTC/USDT", "ETH/USDT", "SOL/USDT", "BNB/USDT")

	report, err := newTestSyncer(fetcher, catalog, path, WithLimit(2)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.TradingPair{"BTC/USDT", "ETH/USDT"}, report.Added)
}

func TestSyncer_RunMissingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	fetcher := cmcServer(t, `{"status": {"error_code": 0}}`)
	notifier := &notifierMock{}

	report, err := newTestSyncer(fetcher, exchange.NewStaticCatalog("BTC/USDT"), path, WithNotifier(notifier)).
		Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Fetched)
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.Added)
	assert.Empty(t, notifier.messages)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSyncer_RunErrors(t *testing.T) {
	t.Run("malformed coin", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "top_pairs.txt")
		fetcher := cmcServer(t, `{"data": [{"id": 1, "quote": {}}]}`)

		_, err := newTestSyncer(fetcher, exchange.NewStaticCatalog("BTC/USDT"), path).Run(context.Background())
		require.ErrorIs(t, err, core.ErrMalformedResponse)

		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("authentication failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status": {"error_code": 1001, "error_message": "This API Key is invalid."}}`))
		}))
		t.Cleanup(server.Close)
		fetcher := coinmarketcap.NewClient("xxxx", coinmarketcap.WithBaseURL(server.URL))

		_, err := newTestSyncer(fetcher, exchange.NewStaticCatalog(), filepath.Join(t.TempDir(), "f.txt")).
			Run(context.Background())

		var httpErr *coinmarketcap.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.ErrorIs(t, err, core.ErrHTTPStatus)
	})

	t.Run("invalid request", func(t *testing.T) {
		fetcher := coinmarketcap.NewClient("key", coinmarketcap.WithBaseURL("http://127.0.0.1:0"))

		_, err := newTestSyncer(fetcher, exchange.NewStaticCatalog(), filepath.Join(t.TempDir(), "f.txt"),
			WithConvert("dollars")).Run(context.Background())
		require.ErrorIs(t, err, core.ErrInvalidRequest)
	})

	t.Run("catalog failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "top_pairs.txt")
		fetcher := cmcServer(t, listingsJSON("BTC"))

		_, err := newTestSyncer(fetcher, failingCatalog{}, path).Run(context.Background())
		require.ErrorIs(t, err, core.ErrCatalogLoad)

		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSyncer_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(listingsJSON("BTC", "ETH", "DAI")))
	}))
	t.Cleanup(server.Close)
	fetcher := coinmarketcap.NewClient("key", coinmarketcap.WithBaseURL(server.URL))

	catalog := exchange.NewStaticCatalog("BTC/FDUSD", "ETH/FDUSD", "DAI/FDUSD")
	syncer := newTestSyncer(fetcher, catalog, path,
		WithFetchLimit(50),
		WithConvert("eur"),
		WithSort("volume_24h"),
		WithSortDir("asc"),
		WithQuote("FDUSD"),
		WithStablecoins("ETH"),
	)

	report, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, query, "limit=50")
	assert.Contains(t, query, "convert=EUR")
	assert.Contains(t, query, "sort=volume_24h")
	assert.Contains(t, query, "sort_dir=asc")
	assert.Equal(t, []core.TradingPair{"BTC/FDUSD", "DAI/FDUSD"}, report.Added)
}

func TestSyncer_RunStablecoinRankedFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	fetcher := cmcServer(t, listingsJSON("USDC", "BTC"))
	catalog := exchange.NewStaticCatalog("USDC/USDT", "BTC/USDT")

	report, err := newTestSyncer(fetcher, catalog, path).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []core.TradingPair{"BTC/USDT"}, report.Matched)
	assert.Equal(t, []string{"BTC/USDT"}, readLines(t, path))
}

func TestSyncer_RunSkipsExistingPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("BTC/USDT\n"), 0o644))

	fetcher := cmcServer(t, listingsJSON("BTC", "ETH", "SOL"))
	catalog := exchange.NewStaticCatalog("BTC/USDT", "ETH/USDT", "SOL/USDT")

	report, err := newTestSyncer(fetcher, catalog, path).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []core.TradingPair{"BTC/USDT", "ETH/USDT", "SOL/USDT"}, report.Matched)
	assert.Equal(t, []core.TradingPair{"ETH/USDT", "SOL/USDT"}, report.Added)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT\nETH/USDT\nSOL/USDT\n", string(content))
}

func TestSyncer_RunUsesQuoteIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	fetcher := cmcServer(t, listingsJSON("BTC", "ETH"))
	catalog := &quoteOnlyCatalog{byQuote: map[string][]string{"USDT": {"ETH/USDT"}}}

	report, err := newTestSyncer(fetcher, catalog, path).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"USDT"}, catalog.quotes)
	assert.Equal(t, []core.TradingPair{"ETH/USDT"}, report.Added)
}

func TestSyncer_RunBinanceCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/exchangeInfo" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "timezone": "UTC",
  "serverTime": 1714557600000,
  "rateLimits": [],
  "symbols": [
    {"symbol": "BTCUSDT", "status": "TRADING", "baseAsset": "BTC", "quoteAsset": "USDT", "filters": []},
    {"symbol": "USDCUSDT", "status": "TRADING", "baseAsset": "USDC", "quoteAsset": "USDT", "filters": []},
    {"symbol": "DOGEBTC", "status": "TRADING", "baseAsset": "DOGE", "quoteAsset": "BTC", "filters": []},
    {"symbol": "SOLUSDT", "status": "BREAK", "baseAsset": "SOL", "quoteAsset": "USDT", "filters": []},
    {"symbol": "ETHUSDT", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "USDT", "filters": []}
  ]
}`))
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		name       string
		activeOnly bool
		want       []core.TradingPair
	}{
		{name: "all markets", want: []core.TradingPair{"BTC/USDT", "ETH/USDT", "SOL/USDT"}},
		{name: "active only", activeOnly: true, want: []core.TradingPair{"BTC/USDT", "ETH/USDT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := binance.NewCatalog(zerolog.NewNop(), binance.Config{
				BaseURL:    server.URL,
				ActiveOnly: tt.activeOnly,
			})
			require.NoError(t, err)
			t.Cleanup(func() { _ = catalog.Close() })

			path := filepath.Join(t.TempDir(), "top_pairs.txt")
			fetcher := cmcServer(t, listingsJSON("BTC", "USDC", "ETH", "DOGE", "SOL"))

			report, err := newTestSyncer(fetcher, catalog, path).Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.want, report.Added)
			assert.Equal(t, core.PairStrings(tt.want), readLines(t, path))
		})
	}
}
