package exchange

import (
	"strings"

	"github.com/raykavin/toppairs/pkg/core"
)

// BaseAssets derives the upper-cased base assets of the pairs quoted in quote.
// Keys that are not "BASE/QUOTE" strings are ignored.
func BaseAssets(pairs []string, quote string) map[string]struct{} {
	quote = strings.ToUpper(strings.TrimSpace(quote))
	bases := make(map[string]struct{})

	for _, key := range pairs {
		pair, err := core.ParsePair(key)
		if err != nil {
			continue
		}

		base, q := pair.Split()
		if q != quote {
			continue
		}
		bases[base] = struct{}{}
	}

	return bases
}
