package validation

import (
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

func validBuy() model.Transaction {
	return model.Transaction{
		AssetID:        "a1",
		Kind:           model.TransactionBuy,
		Date:           "2024-03-01",
		QuantityChange: 10,
		PricePerUnit:   100,
		Total:          1000,
	}
}

func TestValidateTransaction(t *testing.T) {
	t.Run("valid buy passes", func(t *testing.T) {
		tx := validBuy()
		if err := ValidateTransaction(&tx); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("RFC3339 date accepted", func(t *testing.T) {
		tx := validBuy()
		tx.Date = "2024-03-01T15:04:05Z"
		if err := ValidateTransaction(&tx); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("sell requires negative quantity change", func(t *testing.T) {
		tx := validBuy()
		tx.Kind = model.TransactionSell
		tx.QuantityChange = 5

		err := ValidateTransaction(&tx)
		if err == nil {
			t.Fatal("expected validation error for positive sell quantity")
		}
		if fields := err.(*Error).Fields; fields["quantityChange"] == "" {
			t.Errorf("expected quantityChange failure, got %v", fields)
		}
	})

	t.Run("buy rejects negative quantity change", func(t *testing.T) {
		tx := validBuy()
		tx.QuantityChange = -5

		if err := ValidateTransaction(&tx); err == nil {
			t.Error("expected validation error for negative buy quantity")
		}
	})

	t.Run("adjustment allows either sign", func(t *testing.T) {
		for _, quantity := range []float64{-3, 0, 3} {
			tx := validBuy()
			tx.Kind = model.TransactionAdjustment
			tx.QuantityChange = quantity
			tx.Total = 0
			if err := ValidateTransaction(&tx); err != nil {
				t.Errorf("quantity %v: expected no error, got %v", quantity, err)
			}
		}
	})

	t.Run("multiple failures collected", func(t *testing.T) {
		tx := model.Transaction{Kind: "gift", Date: "not-a-date", Fee: -1}

		err := ValidateTransaction(&tx)
		if err == nil {
			t.Fatal("expected validation error")
		}
		fields := err.(*Error).Fields
		for _, field := range []string{"assetId", "kind", "date", "fee"} {
			if fields[field] == "" {
				t.Errorf("expected failure for field %s, got %v", field, fields)
			}
		}
	})
}
