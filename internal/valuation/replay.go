// Package valuation implements the portfolio valuation replay engine: a pure,
// single-threaded forward simulation that reconstructs daily net worth,
// invested cost basis, and profit/loss from an asset ledger and sparse price
// history. It performs no I/O; every input arrives resolved in memory, and all
// simulation state is local to one Replay call, so concurrent invocations for
// different inputs are safe. Identical inputs always produce identical output,
// which lets callers memoize results by content hash.
package valuation

import (
	"fmt"
	"math"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// MaxReplayDays bounds the day loop (~13.7 years) so malformed date ranges
// cannot stall a replay. Hitting the cap truncates the result and is reported
// as a DiagReplayTruncated diagnostic, never silently.
const MaxReplayDays = 5000

// ConvertFunc converts an amount between currencies using rates supplied by
// the caller. It reports false when no rate is available for the pair.
type ConvertFunc func(amount float64, from, to string) (float64, bool)

// Input carries everything one replay needs, already resolved in memory.
type Input struct {
	Assets       []model.Asset
	Transactions []model.Transaction

	// PriceHistory maps asset ID to a sparse date-to-price series. Gaps are
	// forward-filled; manually valued assets are expected to have no series.
	PriceHistory map[string]map[string]float64

	// Convert translates values into BaseCurrency. A nil Convert treats every
	// amount as already being in the base currency.
	Convert      ConvertFunc
	BaseCurrency string

	Range Range

	// Today anchors the end of the simulation; the zero value means the
	// current UTC date. Tests pin it for reproducibility.
	Today Day
}

// HoldingsState tracks one asset's running position during a replay.
// Both fields stay non-negative: over-disposals clamp to zero and cost basis
// is proportionally reduced on every decrease, so CostBasis/QuantityHeld
// approximates the running average cost.
type HoldingsState struct {
	QuantityHeld float64
	CostBasis    float64
}

// Result is the best-effort outcome of one replay: the snapshot series for
// the requested window plus any non-fatal diagnostics gathered along the way.
type Result struct {
	Snapshots   []model.DailySnapshot
	Diagnostics []Diagnostic
	Truncated   bool
}

// Replay walks calendar days from the resolved replay start through today,
// applying each day's ledger entries to per-asset holdings state, sampling
// forward-filled prices, and emitting one aggregate snapshot per day inside
// the requested window.
//
// Data-quality problems (unparseable dates, missing exchange rates, the
// iteration cap) are reported as diagnostics on the result; they never abort
// the replay.
func Replay(in Input) Result {
	today := in.Today
	if today.IsZero() {
		today = Today()
	}

	entries, diags := Normalize(in.Assets, in.Transactions, today)
	index, priceDiags := BuildPriceIndex(in.PriceHistory)
	diags = append(diags, priceDiags...)

	var earliest Day
	if len(entries) > 0 {
		earliest = entries[0].Day
	}
	window := ResolveWindow(in.Range, today, earliest)

	assetsByID := make(map[string]model.Asset, len(in.Assets))
	for _, asset := range in.Assets {
		assetsByID[asset.ID] = asset
	}

	holdings := make(map[string]*HoldingsState, len(in.Assets))
	filler := index.filler(in.Assets)
	missingRates := make(map[string]bool)

	result := Result{}
	next := 0 // index of the first unapplied entry

	iterations := 0
	for day := window.ReplayStart; !day.After(window.End); day = day.Next() {
		if iterations >= MaxReplayDays {
			result.Truncated = true
			diags = append(diags, Diagnostic{
				Code: DiagReplayTruncated,
				Date: day.String(),
				Message: fmt.Sprintf("replay stopped after %d days, snapshots end at %s; the requested window may be empty",
					MaxReplayDays, day.AddDays(-1)),
			})
			break
		}
		iterations++

		filler.advance(day)

		for next < len(entries) && !entries[next].Day.After(day) {
			applyEntry(holdings, entries[next])
			next++
		}

		snapshot, dayDiags := aggregate(day, in.Assets, holdings, filler, in.Convert, in.BaseCurrency, missingRates)
		diags = append(diags, dayDiags...)

		if window.Contains(day) {
			result.Snapshots = append(result.Snapshots, snapshot)
		}
	}

	result.Diagnostics = diags
	return result
}

// applyEntry mutates one asset's holdings state with a single ledger entry.
//
// Increases add the quantity change and the cash-flow total. Decreases reduce
// cost basis proportionally to the disposed fraction before reducing the
// quantity, preserving the running average cost of what remains; quantity is
// clamped at zero to tolerate over-disposal input errors.
func applyEntry(holdings map[string]*HoldingsState, e Entry) {
	state := holdings[e.AssetID]
	if state == nil {
		state = &HoldingsState{}
		holdings[e.AssetID] = state
	}

	switch e.Effect {
	case EffectIncrease:
		state.QuantityHeld += e.QuantityChange
		state.CostBasis += e.Total
	case EffectDecrease:
		disposed := math.Abs(e.QuantityChange)
		if state.QuantityHeld > 0 {
			ratio := disposed / state.QuantityHeld
			if ratio > 1 {
				ratio = 1
			}
			state.CostBasis -= state.CostBasis * ratio
		}
		state.QuantityHeld -= disposed
		if state.QuantityHeld < 0 {
			state.QuantityHeld = 0
		}
		if state.CostBasis < 0 {
			state.CostBasis = 0
		}
	}
}

// aggregate folds all asset positions into one daily snapshot in the base
// currency. Liability values subtract from net worth and are excluded from
// invested cost. A missing exchange rate falls back to the unconverted value
// for that asset and is reported once per asset rather than once per day.
func aggregate(
	day Day,
	assets []model.Asset,
	holdings map[string]*HoldingsState,
	filler *forwardFiller,
	convert ConvertFunc,
	baseCurrency string,
	missingRates map[string]bool,
) (model.DailySnapshot, []Diagnostic) {

	var diags []Diagnostic
	var netWorth, investedCost float64

	for _, asset := range assets {
		state := holdings[asset.ID]
		if state == nil || state.QuantityHeld <= 0 {
			continue
		}

		value := state.QuantityHeld * filler.priceOf(asset.ID)
		cost := state.CostBasis

		if convert != nil && asset.Currency != "" && asset.Currency != baseCurrency {
			convertedValue, ok := convert(value, asset.Currency, baseCurrency)
			if ok {
				value = convertedValue
				cost, _ = convert(cost, asset.Currency, baseCurrency)
			} else if !missingRates[asset.ID] {
				missingRates[asset.ID] = true
				diags = append(diags, Diagnostic{
					Code:    DiagMissingRate,
					AssetID: asset.ID,
					Date:    day.String(),
					Message: fmt.Sprintf("no %s/%s rate for asset %s, using unconverted value",
						asset.Currency, baseCurrency, asset.ID),
				})
			}
		}

		if asset.Kind == model.AssetKindLiability {
			netWorth -= value
		} else {
			netWorth += value
			investedCost += cost
		}
	}

	profitLoss := netWorth - investedCost
	profitLossPercent := 0.0
	if investedCost != 0 {
		profitLossPercent = profitLoss / investedCost * 100
	}

	return model.DailySnapshot{
		Date:              day.String(),
		NetWorth:          netWorth,
		InvestedCost:      investedCost,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: profitLossPercent,
	}, diags
}
