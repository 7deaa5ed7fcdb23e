package binance

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/raykavin/toppairs/pkg/core"
)

// futuresMarkets lists the symbols of the USDⓈ-M futures exchangeInfo endpoint.
// Delivery contracts share the base/quote of the perpetual and collapse onto
// the same pair key.
func futuresMarkets(client *futures.Client) fetchFunc {
	return func(ctx context.Context) ([]core.Market, error) {
		info, err := client.NewExchangeInfoService().Do(ctx)
		if err != nil {
			return nil, err
		}

		markets := make([]core.Market, 0, len(info.Symbols))
		for _, symbol := range info.Symbols {
			if symbol.ContractType != futures.ContractTypePerpetual {
				continue
			}
			markets = append(markets, newMarket(symbol.Symbol, symbol.BaseAsset, symbol.QuoteAsset, symbol.Status))
		}
		return markets, nil
	}
}
