package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/marketdata"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/service"
	"github.com/jmolenaar/wealth-tracker/internal/testutil"
)

// stubFetcher serves canned closes per symbol and records spot rate lookups.
type stubFetcher struct {
	closes    map[string][]marketdata.ClosePoint
	spotRates map[string]float64
}

func (s *stubFetcher) DailyCloses(symbol string, _, _ time.Time) ([]marketdata.ClosePoint, error) {
	points, ok := s.closes[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return points, nil
}

func (s *stubFetcher) SpotRate(from, to string) (float64, error) {
	rate, ok := s.spotRates[from+"/"+to]
	if !ok {
		return 0, errors.New("no rate")
	}
	return rate, nil
}

func newTestPriceService(t *testing.T, db *sql.DB, fetcher service.PriceFetcher) *service.PriceService {
	t.Helper()

	settingsRepo, err := repository.NewSettingsRepository(db, "")
	if err != nil {
		t.Fatalf("Failed to create settings repository: %v", err)
	}

	return service.NewPriceService(
		repository.NewAssetRepository(db),
		repository.NewPriceRepository(db),
		repository.NewRateRepository(db),
		settingsRepo,
		fetcher,
		"EUR",
	)
}

func TestRefreshAllPrices(t *testing.T) {
	t.Run("stores closes and updates current price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		asset := testutil.NewAsset().
			WithSymbol("FUND").
			WithCurrentPrice(100).
			Build(t, db)

		fetcher := &stubFetcher{
			closes: map[string][]marketdata.ClosePoint{
				"FUND": {
					{Date: "2024-03-01", Close: 101},
					{Date: "2024-03-04", Close: 103.5},
				},
			},
		}
		svc := newTestPriceService(t, db, fetcher)

		// Execute
		result, err := svc.RefreshAllPrices(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("RefreshAllPrices failed: %v", err)
		}
		if !result.Success {
			t.Error("expected success")
		}
		if result.TotalUpdated != 1 {
			t.Errorf("expected 1 updated asset, got %d", result.TotalUpdated)
		}
		if result.UpdatedAssets[0].PricesAdded != 2 {
			t.Errorf("expected 2 prices added, got %d", result.UpdatedAssets[0].PricesAdded)
		}
		testutil.AssertRowCount(t, db, "asset_price", 2)

		refreshed, err := repository.NewAssetRepository(db).GetAsset(asset.ID)
		if err != nil {
			t.Fatalf("GetAsset failed: %v", err)
		}
		if refreshed.CurrentPrice != 103.5 {
			t.Errorf("expected current price updated to latest close, got %v", refreshed.CurrentPrice)
		}
	})

	t.Run("skips manually valued assets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().
			WithKind(model.AssetKindCash).
			WithSymbol("").
			Build(t, db)

		svc := newTestPriceService(t, db, &stubFetcher{})

		// Execute
		result, err := svc.RefreshAllPrices(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("RefreshAllPrices failed: %v", err)
		}
		if result.TotalUpdated != 0 || result.TotalErrors != 0 {
			t.Errorf("expected nothing attempted, got %+v", result)
		}
	})

	t.Run("collects per-asset failures without aborting", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().WithName("Good").WithSymbol("GOOD").Build(t, db)
		testutil.NewAsset().WithName("Bad").WithSymbol("BAD").Build(t, db)

		fetcher := &stubFetcher{
			closes: map[string][]marketdata.ClosePoint{
				"GOOD": {{Date: "2024-03-01", Close: 10}},
			},
		}
		svc := newTestPriceService(t, db, fetcher)

		// Execute
		result, err := svc.RefreshAllPrices(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("RefreshAllPrices failed: %v", err)
		}
		if result.TotalUpdated != 1 {
			t.Errorf("expected 1 updated, got %d", result.TotalUpdated)
		}
		if result.TotalErrors != 1 {
			t.Errorf("expected 1 error, got %d", result.TotalErrors)
		}
		if !result.Success {
			t.Error("partial success still counts as success")
		}
	})

	t.Run("refreshes exchange rates for foreign currencies", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().
			WithSymbol("USFUND").
			WithCurrency("USD").
			Build(t, db)

		fetcher := &stubFetcher{
			closes: map[string][]marketdata.ClosePoint{
				"USFUND": {{Date: "2024-03-01", Close: 10}},
			},
			spotRates: map[string]float64{"USD/EUR": 0.92},
		}
		svc := newTestPriceService(t, db, fetcher)

		// Execute
		if _, err := svc.RefreshAllPrices(context.Background()); err != nil {
			t.Fatalf("RefreshAllPrices failed: %v", err)
		}

		// Assert
		rates, err := repository.NewRateRepository(db).GetRates()
		if err != nil {
			t.Fatalf("GetRates failed: %v", err)
		}
		if len(rates) != 1 {
			t.Fatalf("expected 1 rate, got %d", len(rates))
		}
		if rates[0].FromCurrency != "USD" || rates[0].ToCurrency != "EUR" || rates[0].Rate != 0.92 {
			t.Errorf("unexpected rate %+v", rates[0])
		}
	})
}

func TestRefreshAssetPrice(t *testing.T) {
	t.Run("rejects manually valued asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		asset := testutil.NewAsset().
			WithKind(model.AssetKindRealEstate).
			WithSymbol("").
			Build(t, db)

		svc := newTestPriceService(t, db, &stubFetcher{})

		_, err := svc.RefreshAssetPrice(context.Background(), asset.ID)
		if !errors.Is(err, apperrors.ErrAssetNotPriced) {
			t.Errorf("expected ErrAssetNotPriced, got %v", err)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newTestPriceService(t, db, &stubFetcher{})

		_, err := svc.RefreshAssetPrice(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("expected ErrAssetNotFound, got %v", err)
		}
	})
}
