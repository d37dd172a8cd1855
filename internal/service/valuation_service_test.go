package service_test

import (
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/testutil"
	"github.com/jmolenaar/wealth-tracker/internal/valuation"
)

func TestGetHistory(t *testing.T) {
	t.Run("single equity position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().
			WithName("Index Fund").
			WithCurrentPrice(120).
			Build(t, db)

		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if history.BaseCurrency != "EUR" {
			t.Errorf("expected base currency EUR, got %s", history.BaseCurrency)
		}
		if len(history.Snapshots) == 0 {
			t.Fatal("expected snapshots, got none")
		}

		first := history.Snapshots[0]
		if first.Date != "2024-01-02" {
			t.Errorf("expected series to start at the first ledger entry, got %s", first.Date)
		}

		// No stored price rows: value forward-fills from the asset's current price.
		last := history.Snapshots[len(history.Snapshots)-1]
		if last.NetWorth != 1200 {
			t.Errorf("expected net worth 1200, got %v", last.NetWorth)
		}
		if last.InvestedCost != 1000 {
			t.Errorf("expected invested cost 1000, got %v", last.InvestedCost)
		}
		if last.ProfitLoss != 200 {
			t.Errorf("expected profit 200, got %v", last.ProfitLoss)
		}
		if last.ProfitLossPercent != 20 {
			t.Errorf("expected profit percent 20, got %v", last.ProfitLossPercent)
		}
	})

	t.Run("stored prices override the current price seed", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().WithCurrentPrice(100).Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)
		testutil.CreatePrice(t, db, asset.ID, "2024-01-03", 150)

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		last := history.Snapshots[len(history.Snapshots)-1]
		if last.NetWorth != 1500 {
			t.Errorf("expected forward-filled price 150 to value position at 1500, got %v", last.NetWorth)
		}
	})

	t.Run("foreign currency converted via stored rate", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().
			WithCurrency("USD").
			WithCurrentPrice(100).
			Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)
		testutil.CreateRate(t, db, "USD", "EUR", 0.5, "2024-01-02")

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		last := history.Snapshots[len(history.Snapshots)-1]
		if last.NetWorth != 500 {
			t.Errorf("expected converted net worth 500, got %v", last.NetWorth)
		}
		if len(history.Warnings) != 0 {
			t.Errorf("expected no warnings with a stored rate, got %v", history.Warnings)
		}
	})

	t.Run("missing rate surfaces a warning instead of failing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().WithCurrency("USD").Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if len(history.Warnings) != 1 {
			t.Fatalf("expected exactly one deduplicated warning, got %d", len(history.Warnings))
		}
		if history.Warnings[0].Code != "missing-exchange-rate" {
			t.Errorf("unexpected warning code %s", history.Warnings[0].Code)
		}
		if history.Warnings[0].AssetID != asset.ID {
			t.Errorf("warning should name the affected asset, got %s", history.Warnings[0].AssetID)
		}
	})

	t.Run("empty portfolio yields one snapshot for today", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if len(history.Snapshots) != 1 {
			t.Fatalf("expected 1 snapshot, got %d", len(history.Snapshots))
		}
		if history.Snapshots[0].NetWorth != 0 {
			t.Errorf("expected zero net worth, got %v", history.Snapshots[0].NetWorth)
		}
	})

	t.Run("invalid range selector rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		_, err := svc.GetHistory("2y")
		if err != apperrors.ErrInvalidRange {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("memoized result invalidated by new ledger entry", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().WithCurrentPrice(100).Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)

		first, err := svc.GetHistory("all")
		if err != nil {
			t.Fatalf("first GetHistory failed: %v", err)
		}

		// Second call with unchanged data serves the memoized result.
		second, err := svc.GetHistory("all")
		if err != nil {
			t.Fatalf("second GetHistory failed: %v", err)
		}
		if len(second.Snapshots) != len(first.Snapshots) {
			t.Errorf("memoized result differs: %d vs %d snapshots", len(second.Snapshots), len(first.Snapshots))
		}

		// Execute: write to the ledger, which must invalidate the cache.
		testutil.NewTransaction(asset.ID).
			WithDate("2024-02-01").
			WithQuantityChange(5).
			WithTotal(500).
			Build(t, db)

		third, err := svc.GetHistory("all")
		if err != nil {
			t.Fatalf("third GetHistory failed: %v", err)
		}

		// Assert
		last := third.Snapshots[len(third.Snapshots)-1]
		if last.NetWorth != 1500 {
			t.Errorf("expected recomputed net worth 1500 after new buy, got %v", last.NetWorth)
		}
		if last.InvestedCost != 1500 {
			t.Errorf("expected recomputed invested cost 1500, got %v", last.InvestedCost)
		}
	})

	t.Run("memoized result expires when the date rolls over", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		asset := testutil.NewAsset().WithCurrentPrice(100).Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithDate("2024-01-02").
			WithQuantityChange(10).
			WithTotal(1000).
			Build(t, db)

		day1 := valuation.NewDay(2024, 3, 1)
		svc.Now = func() valuation.Day { return day1 }

		first, err := svc.GetHistory("all")
		if err != nil {
			t.Fatalf("first GetHistory failed: %v", err)
		}
		if last := first.Snapshots[len(first.Snapshots)-1]; last.Date != "2024-03-01" {
			t.Fatalf("expected series to end on 2024-03-01, got %s", last.Date)
		}

		// Execute: same data, next calendar day.
		svc.Now = func() valuation.Day { return day1.Next() }

		second, err := svc.GetHistory("all")
		if err != nil {
			t.Fatalf("second GetHistory failed: %v", err)
		}

		// Assert: the cached day-one series must not be served back.
		last := second.Snapshots[len(second.Snapshots)-1]
		if last.Date != "2024-03-02" {
			t.Errorf("expected recomputed series ending 2024-03-02, got %s", last.Date)
		}
		if len(second.Snapshots) != len(first.Snapshots)+1 {
			t.Errorf("expected one more snapshot after rollover, got %d vs %d",
				len(second.Snapshots), len(first.Snapshots))
		}
	})

	t.Run("liability reduces net worth", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		cash := testutil.NewAsset().
			WithKind(model.AssetKindCash).
			WithSymbol("").
			WithCurrentPrice(1).
			Build(t, db)
		loan := testutil.NewAsset().
			WithKind(model.AssetKindLiability).
			WithSymbol("").
			WithCurrentPrice(1).
			Build(t, db)

		testutil.NewTransaction(cash.ID).
			WithKind(model.TransactionDeposit).
			WithDate("2024-01-02").
			WithQuantityChange(2000).
			WithTotal(2000).
			Build(t, db)
		testutil.NewTransaction(loan.ID).
			WithKind(model.TransactionBorrow).
			WithDate("2024-01-02").
			WithQuantityChange(800).
			WithTotal(800).
			Build(t, db)

		// Execute
		history, err := svc.GetHistory("all")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		last := history.Snapshots[len(history.Snapshots)-1]
		if last.NetWorth != 1200 {
			t.Errorf("expected net worth 2000 - 800 = 1200, got %v", last.NetWorth)
		}
		// Liabilities never count as invested capital.
		if last.InvestedCost != 2000 {
			t.Errorf("expected invested cost 2000, got %v", last.InvestedCost)
		}
	})
}
