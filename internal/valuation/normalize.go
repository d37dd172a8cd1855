package valuation

import (
	"fmt"
	"sort"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// Effect is the resolved ledger direction of an entry. The replay loop
// dispatches on this two-case enum instead of re-deriving sign logic from
// transaction kinds on every simulated day.
type Effect int

// Entry directions.
const (
	EffectIncrease Effect = iota
	EffectDecrease
)

// Entry is a replay-ready ledger entry: the transaction's date parsed to a
// calendar day and its holdings effect resolved once during normalization.
type Entry struct {
	ID             string
	AssetID        string
	Kind           model.TransactionKind
	Day            Day
	QuantityChange float64
	Total          float64
	Effect         Effect
	Synthetic      bool // true for manufactured opening entries
}

// Normalize combines all recorded transactions with one synthesized opening
// entry per asset that has no transaction history, producing a single
// chronologically ordered entry stream.
//
// Assets that never appear in the transaction list are represented purely by
// their stored metadata ("legacy" holdings). For each such asset with a
// non-zero quantity, a synthetic buy (borrow for liabilities) is manufactured
// dated at the asset's acquisition date, or today when none is recorded, with
// the stored quantity and average cost as its opening position. Assets with
// zero quantity and no transactions contribute nothing to the replay.
//
// Transactions with unparseable dates are excluded from the stream and
// reported as DiagMalformedDate diagnostics; the date is never guessed. An
// unreadable acquisition date on a legacy asset is reported the same way,
// with its opening entry dated today rather than relocated silently.
//
// The sort is stable: entries sharing a day keep their original relative
// order, so later-recorded corrections apply after earlier entries.
func Normalize(assets []model.Asset, transactions []model.Transaction, today Day) ([]Entry, []Diagnostic) {
	if today.IsZero() {
		today = Today()
	}

	var diags []Diagnostic
	entries := make([]Entry, 0, len(transactions)+len(assets))

	hasTransactions := make(map[string]bool, len(assets))
	for _, tx := range transactions {
		hasTransactions[tx.AssetID] = true
	}

	for _, tx := range transactions {
		day, err := ParseDay(tx.Date)
		if err != nil {
			diags = append(diags, Diagnostic{
				Code:          DiagMalformedDate,
				TransactionID: tx.ID,
				AssetID:       tx.AssetID,
				Date:          tx.Date,
				Message:       fmt.Sprintf("transaction %s skipped: %v", tx.ID, err),
			})
			continue
		}
		entries = append(entries, Entry{
			ID:             tx.ID,
			AssetID:        tx.AssetID,
			Kind:           tx.Kind,
			Day:            day,
			QuantityChange: tx.QuantityChange,
			Total:          entryTotal(tx),
			Effect:         effectOf(tx.Kind, tx.QuantityChange),
		})
	}

	for _, asset := range assets {
		if hasTransactions[asset.ID] || asset.Quantity == 0 {
			continue
		}

		day := today
		if asset.DateAcquired != "" {
			parsed, err := ParseDay(asset.DateAcquired)
			if err != nil {
				diags = append(diags, Diagnostic{
					Code:    DiagMalformedDate,
					AssetID: asset.ID,
					Date:    asset.DateAcquired,
					Message: fmt.Sprintf("acquisition date of asset %s unreadable, opening entry dated today: %v", asset.ID, err),
				})
			} else {
				day = parsed
			}
		}
		entries = append(entries, syntheticOpening(asset, day))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day.Before(entries[j].Day)
	})

	return entries, diags
}

// syntheticOpening manufactures the opening entry for an asset that predates
// the transaction log, dated at the given day. It exists only for the
// duration of one replay.
func syntheticOpening(asset model.Asset, day Day) Entry {
	kind := model.TransactionBuy
	if asset.Kind == model.AssetKindLiability {
		kind = model.TransactionBorrow
	}

	return Entry{
		ID:             "synthetic-" + asset.ID,
		AssetID:        asset.ID,
		Kind:           kind,
		Day:            day,
		QuantityChange: asset.Quantity,
		Total:          asset.Quantity * asset.AverageCost,
		Effect:         EffectIncrease,
		Synthetic:      true,
	}
}

// effectOf resolves a transaction kind to its holdings direction. Sell,
// withdrawal, and repay always decrease; buy, deposit, and borrow always
// increase; balance adjustments and dividends follow the sign of their
// quantity change.
func effectOf(kind model.TransactionKind, quantityChange float64) Effect {
	switch kind {
	case model.TransactionSell, model.TransactionWithdrawal, model.TransactionRepay:
		return EffectDecrease
	case model.TransactionBuy, model.TransactionDeposit, model.TransactionBorrow:
		return EffectIncrease
	default:
		if quantityChange < 0 {
			return EffectDecrease
		}
		return EffectIncrease
	}
}

// entryTotal resolves the cost-basis contribution of a transaction. Dividend
// entries contribute no invested capital: reinvested units arrive at zero
// cost and cash dividends are income, not investment.
func entryTotal(tx model.Transaction) float64 {
	if tx.Kind == model.TransactionDividend {
		return 0
	}
	return tx.Total
}
