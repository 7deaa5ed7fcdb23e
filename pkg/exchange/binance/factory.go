package binance

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/raykavin/toppairs/pkg/logger"
)

// MarketType represents the type of market (spot or futures)
type MarketType string

const (
	// MarketTypeSpot represents the spot market
	MarketTypeSpot MarketType = "spot"

	// MarketTypeFutures represents the USDⓈ-M futures market
	MarketTypeFutures MarketType = "futures"
)

// Config represents the configuration of a Binance market catalog
type Config struct {
	// Market type (spot or futures), spot when empty
	Type MarketType

	// Keep only symbols whose status is TRADING
	ActiveOnly bool

	// Use testnet
	UseTestnet bool

	// Custom REST endpoint, overrides the default host of the market type
	BaseURL string

	// Timeout of the exchangeInfo request, library default when zero
	Timeout time.Duration
}

// NewCatalog creates a catalog for the configured market type. No request is
// made until LoadMarkets is called.
func NewCatalog(log logger.Logger, config Config) (*Catalog, error) {
	var fetch fetchFunc

	switch config.Type {
	case MarketTypeSpot, "":
		config.Type = MarketTypeSpot
		fetch = spotMarkets(newSpotClient(config))
	case MarketTypeFutures:
		fetch = futuresMarkets(newFuturesClient(config))
	default:
		return nil, fmt.Errorf("unknown market type: %s", config.Type)
	}

	return newCatalog(log, config, fetch)
}

// newSpotClient creates a public spot client, exchangeInfo needs no credentials
func newSpotClient(config Config) *binance.Client {
	binance.UseTestnet = config.UseTestnet

	client := binance.NewClient("", "")
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		client.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	return client
}

// newFuturesClient creates a public USDⓈ-M futures client
func newFuturesClient(config Config) *futures.Client {
	futures.UseTestnet = config.UseTestnet

	client := futures.NewClient("", "")
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		client.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	return client
}
