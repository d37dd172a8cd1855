package model

import "time"

// AssetKind classifies a holding and determines its default valuation treatment.
type AssetKind string

// Supported asset kinds.
const (
	AssetKindEquity     AssetKind = "equity"
	AssetKindFund       AssetKind = "fund"
	AssetKindCrypto     AssetKind = "crypto"
	AssetKindCash       AssetKind = "cash"
	AssetKindRealEstate AssetKind = "real-estate"
	AssetKindLiability  AssetKind = "liability"
	AssetKindOther      AssetKind = "other"
)

// ManuallyValued reports whether the asset kind is valued by hand rather than
// through a market price feed. Manually valued assets have no price history;
// their stored current price is used as a constant during valuation replay.
func (k AssetKind) ManuallyValued() bool {
	switch k {
	case AssetKindCash, AssetKindRealEstate, AssetKindLiability, AssetKindOther:
		return true
	}
	return false
}

// Asset represents a tracked holding from the database.
// The valuation engine treats assets as read-only metadata; it never mutates them.
type Asset struct {
	ID           string    `json:"id"`
	Kind         AssetKind `json:"kind"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol,omitempty"`       // Ticker symbol for price lookups, empty for manually valued assets
	Quantity     float64   `json:"quantity"`               // Units currently held, zero for fully disposed assets
	AverageCost  float64   `json:"averageCost"`            // Average cost per unit
	CurrentPrice float64   `json:"currentPrice"`           // Latest known price per unit
	Currency     string    `json:"currency"`               // ISO currency code
	DateAcquired string    `json:"dateAcquired,omitempty"` // YYYY-MM-DD, only meaningful when no transactions exist
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
