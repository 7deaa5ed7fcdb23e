package core

import "strings"

// DefaultStablecoins lists the tickers excluded from matching regardless of rank.
var DefaultStablecoins = []string{
	"USDT", "BUSD", "USDC", "TUSD", "USDP",
	"DAI", "FDUSD", "PAX", "UST", "USDD",
}

// StablecoinSet is a case-insensitive set of stablecoin tickers.
type StablecoinSet map[string]struct{}

// NewStablecoinSet builds a set from the given tickers.
// Blank entries are ignored.
func NewStablecoinSet(symbols ...string) StablecoinSet {
	s := make(StablecoinSet, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		s[symbol] = struct{}{}
	}
	return s
}

// DefaultStablecoinSet returns a fresh set built from DefaultStablecoins.
func DefaultStablecoinSet() StablecoinSet {
	return NewStablecoinSet(DefaultStablecoins...)
}

// Contains reports whether symbol is a stablecoin.
func (s StablecoinSet) Contains(symbol string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}
