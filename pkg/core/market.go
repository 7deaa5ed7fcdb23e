package core

// Market contains the exchange metadata of a listed pair
type Market struct {
	Pair       TradingPair `json:"pair"`
	Symbol     string      `json:"symbol"`
	BaseAsset  string      `json:"base_asset"`
	QuoteAsset string      `json:"quote_asset"`
	Status     string      `json:"status"`
}

// MarketStatusTrading is the exchange status of a pair open for trading
const MarketStatusTrading = "TRADING"

// IsTrading reports whether the market is currently open for trading
func (m Market) IsTrading() bool { return m.Status == MarketStatusTrading }
