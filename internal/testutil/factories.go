package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// MakeID generates a fresh UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithKind(model.AssetKindCash).
//	    WithCurrency("USD").
//	    WithQuantity(5000).
//	    Build(t, db)
type AssetBuilder struct {
	ID           string
	Kind         model.AssetKind
	Name         string
	Symbol       string
	Quantity     float64
	AverageCost  float64
	CurrentPrice float64
	Currency     string
	DateAcquired string
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:           MakeID(),
		Kind:         model.AssetKindEquity,
		Name:         "Test Asset",
		Symbol:       "TST",
		Quantity:     0,
		AverageCost:  0,
		CurrentPrice: 100,
		Currency:     "EUR",
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithKind sets a custom asset kind.
func (b *AssetBuilder) WithKind(kind model.AssetKind) *AssetBuilder {
	b.Kind = kind
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithSymbol sets a custom symbol. An empty symbol marks the asset as having
// no price feed.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets the held quantity.
func (b *AssetBuilder) WithQuantity(quantity float64) *AssetBuilder {
	b.Quantity = quantity
	return b
}

// WithAverageCost sets the average cost per unit.
func (b *AssetBuilder) WithAverageCost(cost float64) *AssetBuilder {
	b.AverageCost = cost
	return b
}

// WithCurrentPrice sets the latest known price per unit.
func (b *AssetBuilder) WithCurrentPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// WithCurrency sets the asset's currency.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.Currency = currency
	return b
}

// WithDateAcquired sets the legacy acquisition date (YYYY-MM-DD).
func (b *AssetBuilder) WithDateAcquired(date string) *AssetBuilder {
	b.DateAcquired = date
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, kind, name, symbol, quantity, average_cost, current_price, currency, date_acquired, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query,
		b.ID, b.Kind, b.Name, nullable(b.Symbol), b.Quantity, b.AverageCost,
		b.CurrentPrice, b.Currency, nullable(b.DateAcquired),
		createdAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:           b.ID,
		Kind:         b.Kind,
		Name:         b.Name,
		Symbol:       b.Symbol,
		Quantity:     b.Quantity,
		AverageCost:  b.AverageCost,
		CurrentPrice: b.CurrentPrice,
		Currency:     b.Currency,
		DateAcquired: b.DateAcquired,
		CreatedAt:    createdAt,
	}
}

// TransactionBuilder provides a fluent interface for creating test ledger entries.
//
// Example usage:
//
//	tx := testutil.NewTransaction(asset.ID).
//	    WithKind(model.TransactionSell).
//	    WithDate("2024-03-01").
//	    WithQuantityChange(-4).
//	    WithTotal(480).
//	    Build(t, db)
type TransactionBuilder struct {
	ID             string
	AssetID        string
	Kind           model.TransactionKind
	Date           string
	QuantityChange float64
	PricePerUnit   float64
	Fee            float64
	Total          float64
	CreatedAt      time.Time
}

// NewTransaction creates a TransactionBuilder for the given asset with
// sensible defaults (a buy of 10 units at 100).
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:             MakeID(),
		AssetID:        assetID,
		Kind:           model.TransactionBuy,
		Date:           "2024-01-01",
		QuantityChange: 10,
		PricePerUnit:   100,
		Total:          1000,
		CreatedAt:      time.Now().UTC(),
	}
}

// WithKind sets the transaction kind.
func (b *TransactionBuilder) WithKind(kind model.TransactionKind) *TransactionBuilder {
	b.Kind = kind
	return b
}

// WithDate sets the transaction date string as stored.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithQuantityChange sets the signed quantity change.
func (b *TransactionBuilder) WithQuantityChange(quantity float64) *TransactionBuilder {
	b.QuantityChange = quantity
	return b
}

// WithPricePerUnit sets the unit price.
func (b *TransactionBuilder) WithPricePerUnit(price float64) *TransactionBuilder {
	b.PricePerUnit = price
	return b
}

// WithFee sets the transaction fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// WithTotal sets the unsigned cash-flow magnitude.
func (b *TransactionBuilder) WithTotal(total float64) *TransactionBuilder {
	b.Total = total
	return b
}

// WithCreatedAt pins the creation timestamp, which controls same-day ordering.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, asset_id, kind, date, quantity_change, price_per_unit, fee, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AssetID, b.Kind, b.Date, b.QuantityChange, b.PricePerUnit,
		b.Fee, b.Total, b.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:             b.ID,
		AssetID:        b.AssetID,
		Kind:           b.Kind,
		Date:           b.Date,
		QuantityChange: b.QuantityChange,
		PricePerUnit:   b.PricePerUnit,
		Fee:            b.Fee,
		Total:          b.Total,
		CreatedAt:      b.CreatedAt,
	}
}

// Convenience functions

// CreateAsset creates an equity asset with the given name and default values.
func CreateAsset(t *testing.T, db *sql.DB, name string) model.Asset {
	t.Helper()
	return NewAsset().WithName(name).Build(t, db)
}

// CreatePrice inserts a historical price row for an asset.
func CreatePrice(t *testing.T, db *sql.DB, assetID, date string, price float64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO asset_price (id, asset_id, date, price) VALUES (?, ?, ?, ?)`,
		MakeID(), assetID, date, price,
	)
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
}

// CreateRate inserts an exchange rate row.
func CreateRate(t *testing.T, db *sql.DB, from, to string, rate float64, date string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO exchange_rate (id, from_currency, to_currency, rate, date) VALUES (?, ?, ?, ?, ?)`,
		MakeID(), from, to, rate, date,
	)
	if err != nil {
		t.Fatalf("Failed to create test exchange rate: %v", err)
	}
}

func nullable(str string) any {
	if str == "" {
		return nil
	}
	return str
}
