package validation

import (
	"time"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

var validTransactionKinds = map[model.TransactionKind]bool{
	model.TransactionBuy:        true,
	model.TransactionSell:       true,
	model.TransactionDeposit:    true,
	model.TransactionWithdrawal: true,
	model.TransactionBorrow:     true,
	model.TransactionRepay:      true,
	model.TransactionDividend:   true,
	model.TransactionAdjustment: true,
}

// Disposal kinds must carry a negative quantity change so the ledger keeps a
// consistent sign convention; acquisitions must not.
var disposalKinds = map[model.TransactionKind]bool{
	model.TransactionSell:       true,
	model.TransactionWithdrawal: true,
	model.TransactionRepay:      true,
}

var acquisitionKinds = map[model.TransactionKind]bool{
	model.TransactionBuy:     true,
	model.TransactionDeposit: true,
	model.TransactionBorrow:  true,
}

// ValidateTransaction checks a ledger entry payload before persistence.
func ValidateTransaction(tx *model.Transaction) error {
	fields := make(map[string]string)

	if tx.AssetID == "" {
		fields["assetId"] = "asset ID is required"
	}
	if !validTransactionKinds[tx.Kind] {
		fields["kind"] = "unrecognized transaction kind"
	}

	if tx.Date == "" {
		fields["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", tx.Date); err != nil {
		if _, err := time.Parse(time.RFC3339, tx.Date); err != nil {
			fields["date"] = "date must be in YYYY-MM-DD or RFC3339 format"
		}
	}

	if disposalKinds[tx.Kind] && tx.QuantityChange >= 0 {
		fields["quantityChange"] = "disposal entries require a negative quantity change"
	}
	if acquisitionKinds[tx.Kind] && tx.QuantityChange < 0 {
		fields["quantityChange"] = "acquisition entries require a non-negative quantity change"
	}

	if tx.PricePerUnit < 0 {
		fields["pricePerUnit"] = "price per unit cannot be negative"
	}
	if tx.Fee < 0 {
		fields["fee"] = "fee cannot be negative"
	}
	if tx.Total < 0 {
		fields["total"] = "total must be an unsigned magnitude"
	}

	return newError(fields)
}
