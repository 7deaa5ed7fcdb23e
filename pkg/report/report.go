// Package report renders the outcome of a sync run as console tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Row is a matched pair with the ranking entry it was built from
type Row struct {
	Pair core.TradingPair
	Coin core.CoinRecord
}

// Rows joins pairs with their coins, keeping the order of pairs. Pairs with
// no coin get an empty record.
func Rows(pairs []core.TradingPair, coins map[core.TradingPair]core.CoinRecord) []Row {
	return lo.Map(pairs, func(pair core.TradingPair, _ int) Row {
		return Row{Pair: pair, Coin: coins[pair]}
	})
}

// Summary aggregates the market statistics of a set of rows
type Summary struct {
	Convert         string
	Count           int
	TotalMarketCap  decimal.Decimal
	MeanChange24h   float64
	MedianChange24h float64
	StdDevChange24h float64
	Gainers         int
	Losers          int
}

// Summarize computes the summary over rows using the quote in convert.
// Rows without such a quote only count towards Count.
func Summarize(rows []Row, convert string) Summary {
	summary := Summary{
		Convert:        strings.ToUpper(convert),
		Count:          len(rows),
		TotalMarketCap: decimal.Zero,
	}

	changes := make([]float64, 0, len(rows))
	for _, row := range rows {
		quote, ok := row.Coin.QuoteIn(convert)
		if !ok {
			continue
		}

		summary.TotalMarketCap = summary.TotalMarketCap.Add(quote.MarketCap)
		changes = append(changes, quote.PercentChange24h.InexactFloat64())

		switch quote.PercentChange24h.Sign() {
		case 1:
			summary.Gainers++
		case -1:
			summary.Losers++
		}
	}

	switch len(changes) {
	case 0:
		return summary
	case 1:
		summary.MeanChange24h = changes[0]
	default:
		summary.MeanChange24h, summary.StdDevChange24h = stat.MeanStdDev(changes, nil)
	}

	sort.Float64s(changes)
	summary.MedianChange24h = stat.Quantile(0.5, stat.Empirical, changes, nil)

	return summary
}

// String formats the summary as a text table
func (s Summary) String() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)

	data := [][]string{
		{"Pairs", strconv.Itoa(s.Count)},
		{"Market cap", fmt.Sprintf("%s %s", s.TotalMarketCap.StringFixed(0), s.Convert)},
		{"24h mean", fmt.Sprintf("%.2f%%", s.MeanChange24h)},
		{"24h median", fmt.Sprintf("%.2f%%", s.MedianChange24h)},
		{"24h stddev", fmt.Sprintf("%.2f", s.StdDevChange24h)},
		{"Gainers", strconv.Itoa(s.Gainers)},
		{"Losers", strconv.Itoa(s.Losers)},
	}

	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()

	return tableString.String()
}

// RenderPairs writes one table line per row with its rank and market data
func RenderPairs(w io.Writer, rows []Row, convert string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Pair", "Name", "Price", "Market cap", "24h %"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, row := range rows {
		line := []string{strconv.Itoa(row.Coin.Rank), row.Pair.String(), row.Coin.Name, "-", "-", "-"}
		if quote, ok := row.Coin.QuoteIn(convert); ok {
			line[3] = quote.Price.StringFixed(4)
			line[4] = quote.MarketCap.StringFixed(0)
			line[5] = quote.PercentChange24h.StringFixed(2)
		}
		table.Append(line)
	}

	table.Render()
}

// RenderWatchlist writes the stored pairs with their line number
func RenderWatchlist(w io.Writer, pairs []core.TradingPair) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Pair"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for i, pair := range pairs {
		table.Append([]string{strconv.Itoa(i + 1), pair.String()})
	}

	table.Render()
}
