package core

import (
	"fmt"
	"strings"
)

// DefaultQuote is the quote asset every watchlist pair is built with.
const DefaultQuote = "USDT"

const pairSeparator = "/"

// TradingPair identifies a tradable instrument as "BASE/QUOTE", e.g. BTC/USDT.
type TradingPair string

// NewPair builds a pair from its components, upper-casing both.
func NewPair(base, quote string) TradingPair {
	return TradingPair(strings.ToUpper(base) + pairSeparator + strings.ToUpper(quote))
}

// ParsePair validates and normalizes a "BASE/QUOTE" string.
func ParsePair(s string) (TradingPair, error) {
	base, quote, found := strings.Cut(strings.TrimSpace(s), pairSeparator)
	if !found {
		return "", fmt.Errorf("%w: %q", ErrInvalidPair, s)
	}
	if base == "" {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPair, s, ErrBaseAssetEmpty)
	}
	if quote == "" {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPair, s, ErrQuoteAssetEmpty)
	}
	return NewPair(base, quote), nil
}

// Split returns the base and quote assets of the pair.
func (p TradingPair) Split() (base, quote string) {
	base, quote, _ = strings.Cut(string(p), pairSeparator)
	return base, quote
}

func (p TradingPair) Base() string {
	base, _ := p.Split()
	return base
}

func (p TradingPair) Quote() string {
	_, quote := p.Split()
	return quote
}

func (p TradingPair) String() string {
	return string(p)
}

// PairStrings converts pairs to plain strings, keeping order.
func PairStrings(pairs []TradingPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = string(p)
	}
	return out
}
