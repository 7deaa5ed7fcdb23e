package toppairs

import (
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/logger"
)

// Option is a functional option for configuring a Syncer instance
type Option func(*Syncer)

// WithLimit sets the maximum number of pairs matched per run, 120 by default
func WithLimit(limit int) Option {
	return func(s *Syncer) {
		s.limit = limit
	}
}

// WithFetchLimit sets how many ranked coins are requested, 300 by default
func WithFetchLimit(limit int) Option {
	return func(s *Syncer) {
		s.request.Limit = limit
	}
}

// WithConvert sets the currency the ranking is quoted in, USD by default
func WithConvert(convert string) Option {
	return func(s *Syncer) {
		s.request.Convert = convert
	}
}

// WithSort sets the ranking field, market_cap by default
func WithSort(sort string) Option {
	return func(s *Syncer) {
		s.request.Sort = sort
	}
}

// WithSortDir sets the ranking direction, desc by default
func WithSortDir(dir string) Option {
	return func(s *Syncer) {
		s.request.SortDir = dir
	}
}

// WithQuote sets the quote asset of the watchlist pairs, USDT by default
func WithQuote(quote string) Option {
	return func(s *Syncer) {
		s.quote = quote
	}
}

// WithStablecoins replaces the stablecoin denylist
func WithStablecoins(symbols ...string) Option {
	return func(s *Syncer) {
		s.stablecoins = core.NewStablecoinSet(symbols...)
	}
}

// WithNotifier registers a notifier called when new pairs are added.
// It can be used more than once.
func WithNotifier(notifier core.Notifier) Option {
	return func(s *Syncer) {
		s.notifiers = append(s.notifiers, notifier)
	}
}

// WithLogger sets the logger of the syncer, DefaultLog by default
func WithLogger(log logger.Logger) Option {
	return func(s *Syncer) {
		s.log = log
	}
}
