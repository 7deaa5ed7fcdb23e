package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CoinRecord is a single entry of a market-cap ranking.
type CoinRecord struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Slug   string           `json:"slug"`
	Rank   int              `json:"cmc_rank"`
	Quote  map[string]Quote `json:"quote"`
}

// Quote holds the market statistics of a coin in one currency.
type Quote struct {
	Price            decimal.Decimal `json:"price"`
	Volume24h        decimal.Decimal `json:"volume_24h"`
	PercentChange1h  decimal.Decimal `json:"percent_change_1h"`
	PercentChange24h decimal.Decimal `json:"percent_change_24h"`
	PercentChange7d  decimal.Decimal `json:"percent_change_7d"`
	MarketCap        decimal.Decimal `json:"market_cap"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// NormalizedSymbol returns the upper-cased ticker used for matching.
func (c CoinRecord) NormalizedSymbol() string {
	return strings.ToUpper(strings.TrimSpace(c.Symbol))
}

// QuoteIn returns the quote for the given currency, matched case-insensitively.
func (c CoinRecord) QuoteIn(currency string) (Quote, bool) {
	if q, ok := c.Quote[currency]; ok {
		return q, true
	}
	for code, q := range c.Quote {
		if strings.EqualFold(code, currency) {
			return q, true
		}
	}
	return Quote{}, false
}
