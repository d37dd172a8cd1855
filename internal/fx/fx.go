// Package fx provides pure currency conversion over a caller-supplied rate
// table. The valuation engine consumes it as a function value and never
// fetches rates itself.
package fx

import (
	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// RateTable maps "FROM/TO" currency pairs to their most recent exchange rate.
type RateTable map[string]float64

// Key builds the lookup key for a currency pair.
func Key(from, to string) string {
	return from + "/" + to
}

// NewRateTable builds a rate table from stored exchange rate rows, keeping
// the latest rate per pair. Rows are expected in ascending date order, so a
// later row simply overwrites an earlier one.
func NewRateTable(rates []model.ExchangeRate) RateTable {
	table := make(RateTable, len(rates))
	for _, rate := range rates {
		table[Key(rate.FromCurrency, rate.ToCurrency)] = rate.Rate
	}
	return table
}

// Convert translates an amount between currencies. Identical or empty
// currency codes pass through unchanged. When only the opposite pair is
// stored, the inverse rate is used. Returns false when no rate is available.
func (t RateTable) Convert(amount float64, from, to string) (float64, bool) {
	if from == to || from == "" || to == "" {
		return amount, true
	}
	if rate, ok := t[Key(from, to)]; ok && rate != 0 {
		return amount * rate, true
	}
	if rate, ok := t[Key(to, from)]; ok && rate != 0 {
		return amount / rate, true
	}
	return amount, false
}
