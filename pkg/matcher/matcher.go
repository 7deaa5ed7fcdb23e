// Package matcher intersects a market-cap ranking with the base assets listed
// on an exchange.
package matcher

import (
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/samber/lo"
)

// Options controls a match run
type Options struct {
	// Limit is the maximum number of pairs returned, none when <= 0
	Limit int

	// Quote is the quote asset pairs are built with, core.DefaultQuote when empty
	Quote string

	// Stablecoins are skipped regardless of rank, core.DefaultStablecoinSet when nil
	Stablecoins core.StablecoinSet
}

func (o Options) quote() string {
	if o.Quote == "" {
		return core.DefaultQuote
	}
	return o.Quote
}

func (o Options) stablecoins() core.StablecoinSet {
	if o.Stablecoins == nil {
		return core.DefaultStablecoinSet()
	}
	return o.Stablecoins
}

// Match is a pair emitted by Matches together with the coin it came from
type Match struct {
	Pair core.TradingPair
	Coin core.CoinRecord
}

// Matches walks coins in rank order and keeps the ones whose symbol is a
// listed base asset and not a stablecoin. A pair is kept at most once and the
// result holds at most opts.Limit entries.
func Matches(coins []core.CoinRecord, bases map[string]struct{}, opts Options) []Match {
	if opts.Limit <= 0 {
		return nil
	}

	var (
		quote       = opts.quote()
		stablecoins = opts.stablecoins()
		seen        = make(map[core.TradingPair]struct{})
		matches     = make([]Match, 0, min(opts.Limit, len(coins)))
	)

	for _, coin := range coins {
		symbol := coin.NormalizedSymbol()
		if symbol == "" || stablecoins.Contains(symbol) {
			continue
		}
		if _, ok := bases[symbol]; !ok {
			continue
		}

		pair := core.NewPair(symbol, quote)
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}

		matches = append(matches, Match{Pair: pair, Coin: coin})
		if len(matches) == opts.Limit {
			break
		}
	}

	return matches
}

// MatchPairs returns the pairs of Matches in rank order
func MatchPairs(coins []core.CoinRecord, bases map[string]struct{}, opts Options) []core.TradingPair {
	return lo.Map(Matches(coins, bases, opts), func(m Match, _ int) core.TradingPair {
		return m.Pair
	})
}

// Diff returns the pairs of emitted that are not in existing, keeping order.
func Diff(emitted []core.TradingPair, existing []core.TradingPair) []core.TradingPair {
	known := lo.SliceToMap(existing, func(p core.TradingPair) (core.TradingPair, struct{}) {
		return p, struct{}{}
	})
	return lo.Filter(emitted, func(p core.TradingPair, _ int) bool {
		_, ok := known[p]
		return !ok
	})
}
