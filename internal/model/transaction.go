package model

import "time"

// TransactionKind identifies the ledger effect of a transaction.
type TransactionKind string

// Supported transaction kinds.
const (
	TransactionBuy        TransactionKind = "buy"
	TransactionSell       TransactionKind = "sell"
	TransactionDeposit    TransactionKind = "deposit"
	TransactionWithdrawal TransactionKind = "withdrawal"
	TransactionBorrow     TransactionKind = "borrow"
	TransactionRepay      TransactionKind = "repay"
	TransactionDividend   TransactionKind = "dividend"
	TransactionAdjustment TransactionKind = "balance-adjustment"
)

// Transaction represents an immutable ledger entry for an asset.
// Date is stored as written (YYYY-MM-DD, or an RFC3339 timestamp from older
// imports); the valuation engine parses and truncates it to a calendar day.
//
// Sign convention: QuantityChange is positive for entries that add units and
// negative for entries that remove them. Sell, withdrawal and repay entries
// must carry a negative QuantityChange; Total is always the unsigned cash
// flow magnitude.
type Transaction struct {
	ID             string          `json:"id"`
	AssetID        string          `json:"assetId"`
	Kind           TransactionKind `json:"kind"`
	Date           string          `json:"date"`
	QuantityChange float64         `json:"quantityChange"`
	PricePerUnit   float64         `json:"pricePerUnit"`
	Fee            float64         `json:"fee"`
	Total          float64         `json:"total"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for API responses.
type TransactionResponse struct {
	ID             string          `json:"id"`
	AssetID        string          `json:"assetId"`
	AssetName      string          `json:"assetName"`
	Kind           TransactionKind `json:"kind"`
	Date           string          `json:"date"`
	QuantityChange float64         `json:"quantityChange"`
	PricePerUnit   float64         `json:"pricePerUnit"`
	Fee            float64         `json:"fee"`
	Total          float64         `json:"total"`
}
