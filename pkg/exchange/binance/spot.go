package binance

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/raykavin/toppairs/pkg/core"
)

// spotMarkets lists the symbols of the spot exchangeInfo endpoint
func spotMarkets(client *binance.Client) fetchFunc {
	return func(ctx context.Context) ([]core.Market, error) {
		info, err := client.NewExchangeInfoService().Do(ctx)
		if err != nil {
			return nil, err
		}

		markets := make([]core.Market, 0, len(info.Symbols))
		for _, symbol := range info.Symbols {
			markets = append(markets, newMarket(symbol.Symbol, symbol.BaseAsset, symbol.QuoteAsset, symbol.Status))
		}
		return markets, nil
	}
}
