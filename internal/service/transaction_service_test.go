package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/testutil"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("assigns ID and derives total", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.CreateAsset(t, db, "Fund A")

		tx := model.Transaction{
			AssetID:        asset.ID,
			Kind:           model.TransactionBuy,
			Date:           "2024-03-01",
			QuantityChange: 4,
			PricePerUnit:   25.5,
			Fee:            1.5,
		}

		// Execute
		err := svc.CreateTransaction(context.Background(), &tx)

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if tx.ID == "" {
			t.Error("expected generated transaction ID")
		}
		if tx.Total != 103.5 {
			t.Errorf("expected derived total 4*25.5+1.5 = 103.5, got %v", tx.Total)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("explicit total preserved", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.CreateAsset(t, db, "Fund B")

		tx := model.Transaction{
			AssetID:        asset.ID,
			Kind:           model.TransactionBuy,
			Date:           "2024-03-01",
			QuantityChange: 4,
			PricePerUnit:   25,
			Total:          99,
		}

		if err := svc.CreateTransaction(context.Background(), &tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if tx.Total != 99 {
			t.Errorf("expected explicit total kept, got %v", tx.Total)
		}
	})

	t.Run("rejects unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		tx := model.Transaction{
			AssetID:        testutil.MakeID(),
			Kind:           model.TransactionBuy,
			Date:           "2024-03-01",
			QuantityChange: 1,
		}

		err := svc.CreateTransaction(context.Background(), &tx)
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("rejects positive sell", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.CreateAsset(t, db, "Fund C")

		tx := model.Transaction{
			AssetID:        asset.ID,
			Kind:           model.TransactionSell,
			Date:           "2024-03-01",
			QuantityChange: 3,
		}

		err := svc.CreateTransaction(context.Background(), &tx)
		var validationErr *validation.Error
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("enriched with asset names in ledger order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.CreateAsset(t, db, "Fund D")

		testutil.NewTransaction(asset.ID).WithDate("2024-02-01").Build(t, db)
		testutil.NewTransaction(asset.ID).WithDate("2024-01-01").Build(t, db)

		// Execute
		transactions, err := svc.GetTransactions()

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].Date != "2024-01-01" {
			t.Errorf("expected date-ascending order, got %s first", transactions[0].Date)
		}
		if transactions[0].AssetName != "Fund D" {
			t.Errorf("expected asset name enrichment, got %q", transactions[0].AssetName)
		}
	})
}
