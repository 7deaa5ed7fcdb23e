package coinmarketcap

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/raykavin/toppairs/pkg/core"
)

// MaxLimit is the largest page the listings endpoint serves.
const MaxLimit = 5000

const (
	SortDirAsc  = "asc"
	SortDirDesc = "desc"
)

// SortFields accepted by the listings endpoint.
var SortFields = []string{
	"market_cap", "market_cap_strict", "name", "symbol", "date_added",
	"price", "circulating_supply", "total_supply", "max_supply",
	"num_market_pairs", "market_cap_by_total_supply_strict",
	"volume_24h", "volume_7d", "volume_30d",
	"percent_change_1h", "percent_change_24h", "percent_change_7d",
}

// DefaultRequest mirrors the ranking used to build the watchlist:
// top 300 coins by market cap, quoted in USD, largest first.
func DefaultRequest() core.ListingsRequest {
	return core.ListingsRequest{
		Start:   1,
		Limit:   300,
		Convert: "USD",
		Sort:    "market_cap",
		SortDir: SortDirDesc,
	}
}

// normalize fills the start offset and canonicalizes letter case.
func normalize(req core.ListingsRequest) core.ListingsRequest {
	if req.Start == 0 {
		req.Start = 1
	}
	req.Convert = strings.ToUpper(strings.TrimSpace(req.Convert))
	req.Sort = strings.ToLower(strings.TrimSpace(req.Sort))
	req.SortDir = strings.ToLower(strings.TrimSpace(req.SortDir))
	return req
}

// ValidateRequest checks the request parameters before any I/O happens.
func ValidateRequest(req core.ListingsRequest) error {
	req = normalize(req)

	if req.Start < 1 {
		return fmt.Errorf("%w: start must be >= 1, got %d", core.ErrInvalidRequest, req.Start)
	}
	if req.Limit < 1 || req.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", core.ErrInvalidRequest, MaxLimit, req.Limit)
	}
	if !isCurrencyCode(req.Convert) {
		return fmt.Errorf("%w: convert must be a 3-letter currency code, got %q", core.ErrInvalidRequest, req.Convert)
	}
	if !slices.Contains(SortFields, req.Sort) {
		return fmt.Errorf("%w: unsupported sort field %q", core.ErrInvalidRequest, req.Sort)
	}
	if req.SortDir != SortDirAsc && req.SortDir != SortDirDesc {
		return fmt.Errorf("%w: sort_dir must be %q or %q, got %q", core.ErrInvalidRequest, SortDirAsc, SortDirDesc, req.SortDir)
	}

	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func queryValues(req core.ListingsRequest) url.Values {
	return url.Values{
		"start":    {strconv.Itoa(req.Start)},
		"limit":    {strconv.Itoa(req.Limit)},
		"convert":  {req.Convert},
		"sort":     {req.Sort},
		"sort_dir": {req.SortDir},
	}
}
