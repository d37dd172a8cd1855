package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/marketdata"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
)

// refreshConcurrency bounds the provider fan-out during a bulk refresh.
const refreshConcurrency = 4

// defaultBackfill is how far back the first refresh of an asset reaches when
// it has no stored prices and no acquisition date.
const defaultBackfill = 365 * 24 * time.Hour

// PriceFetcher is the provider surface the price service needs. Implemented
// by *marketdata.Client; tests substitute a stub.
type PriceFetcher interface {
	DailyCloses(symbol string, startDate, endDate time.Time) ([]marketdata.ClosePoint, error)
	SpotRate(fromCurrency, toCurrency string) (float64, error)
}

// PriceService extends stored price and exchange-rate history from the market
// data provider.
type PriceService struct {
	assetRepo    *repository.AssetRepository
	priceRepo    *repository.PriceRepository
	rateRepo     *repository.RateRepository
	settingsRepo *repository.SettingsRepository
	fetcher      PriceFetcher

	defaultBaseCurrency string
}

// NewPriceService creates a new PriceService with the provided repositories
// and provider client.
func NewPriceService(
	assetRepo *repository.AssetRepository,
	priceRepo *repository.PriceRepository,
	rateRepo *repository.RateRepository,
	settingsRepo *repository.SettingsRepository,
	fetcher PriceFetcher,
	defaultBaseCurrency string,
) *PriceService {
	return &PriceService{
		assetRepo:           assetRepo,
		priceRepo:           priceRepo,
		rateRepo:            rateRepo,
		settingsRepo:        settingsRepo,
		fetcher:             fetcher,
		defaultBaseCurrency: defaultBaseCurrency,
	}
}

// RefreshAllPrices extends the price history of every market-priced asset and
// the exchange rates for every foreign currency in the portfolio. Per-asset
// failures are collected into the result rather than aborting the batch.
func (s *PriceService) RefreshAllPrices(ctx context.Context) (model.PriceRefreshResult, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.PriceRefreshResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	result := model.PriceRefreshResult{
		UpdatedAssets: []model.UpdatedAsset{},
		Errors:        []model.UpdatedAssetError{},
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(refreshConcurrency)

	for _, asset := range assets {
		if asset.Kind.ManuallyValued() || asset.Symbol == "" {
			continue
		}
		asset := asset

		group.Go(func() error {
			added, err := s.refreshAsset(groupCtx, asset)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, model.UpdatedAssetError{
					AssetID: asset.ID,
					Name:    asset.Name,
					Symbol:  asset.Symbol,
					Error:   err.Error(),
				})
				return nil // collect, don't cancel the batch
			}
			result.UpdatedAssets = append(result.UpdatedAssets, model.UpdatedAsset{
				AssetID:     asset.ID,
				Name:        asset.Name,
				Symbol:      asset.Symbol,
				PricesAdded: added,
			})
			return nil
		})
	}

	group.Wait()

	if err := s.refreshRates(ctx, assets); err != nil {
		result.Errors = append(result.Errors, model.UpdatedAssetError{Error: err.Error()})
	}

	result.TotalUpdated = len(result.UpdatedAssets)
	result.TotalErrors = len(result.Errors)
	result.Success = result.TotalUpdated > 0

	return result, nil
}

// RefreshAssetPrice extends the price history of a single asset.
func (s *PriceService) RefreshAssetPrice(ctx context.Context, assetID string) (model.UpdatedAsset, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return model.UpdatedAsset{}, err
	}
	if asset.Kind.ManuallyValued() || asset.Symbol == "" {
		return model.UpdatedAsset{}, apperrors.ErrAssetNotPriced
	}

	added, err := s.refreshAsset(ctx, asset)
	if err != nil {
		return model.UpdatedAsset{}, err
	}

	return model.UpdatedAsset{
		AssetID:     asset.ID,
		Name:        asset.Name,
		Symbol:      asset.Symbol,
		PricesAdded: added,
	}, nil
}

// refreshAsset fetches closes since the last stored date, persists them, and
// updates the asset's current price to the latest close.
func (s *PriceService) refreshAsset(ctx context.Context, asset model.Asset) (int, error) {
	start := s.refreshStart(asset)
	end := time.Now().UTC()

	closes, err := s.fetcher.DailyCloses(asset.Symbol, start, end)
	if err != nil {
		return 0, err
	}

	prices := make([]model.AssetPrice, 0, len(closes))
	var latest model.AssetPrice
	for _, point := range closes {
		price := model.AssetPrice{
			ID:      uuid.New().String(),
			AssetID: asset.ID,
			Date:    point.Date,
			Price:   point.Close,
		}
		prices = append(prices, price)
		latest = price
	}

	added, err := s.priceRepo.InsertPrices(ctx, prices)
	if err != nil {
		return 0, err
	}

	if latest.Price > 0 && latest.Price != asset.CurrentPrice {
		asset.CurrentPrice = latest.Price
		if err := s.assetRepo.UpdateAsset(ctx, &asset); err != nil {
			return added, err
		}
	}

	return added, nil
}

// refreshStart picks where a refresh resumes: the day after the last stored
// price, the acquisition date, or the default backfill window.
func (s *PriceService) refreshStart(asset model.Asset) time.Time {
	if lastDate, err := s.priceRepo.GetLatestPriceDate(asset.ID); err == nil && lastDate != "" {
		if parsed, err := time.Parse("2006-01-02", lastDate); err == nil {
			return parsed.AddDate(0, 0, 1)
		}
	}
	if asset.DateAcquired != "" {
		if parsed, err := time.Parse("2006-01-02", asset.DateAcquired); err == nil {
			return parsed
		}
	}
	return time.Now().UTC().Add(-defaultBackfill)
}

// refreshRates fetches today's spot rate into the base currency for each
// distinct foreign currency held in the portfolio.
func (s *PriceService) refreshRates(ctx context.Context, assets []model.Asset) error {
	baseCurrency := s.defaultBaseCurrency
	settings, err := s.settingsRepo.GetSettings()
	if err == nil && settings.BaseCurrency != "" {
		baseCurrency = settings.BaseCurrency
	} else if err != nil && !errors.Is(err, apperrors.ErrSettingsNotFound) {
		return err
	}

	currencies := make(map[string]bool)
	for _, asset := range assets {
		if asset.Currency != "" && asset.Currency != baseCurrency {
			currencies[asset.Currency] = true
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	var failures []string
	for currency := range currencies {
		rate, err := s.fetcher.SpotRate(currency, baseCurrency)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s/%s: %v", currency, baseCurrency, err))
			continue
		}
		err = s.rateRepo.UpsertRate(ctx, model.ExchangeRate{
			ID:           uuid.New().String(),
			FromCurrency: currency,
			ToCurrency:   baseCurrency,
			Rate:         rate,
			Date:         today,
		})
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s/%s: %v", currency, baseCurrency, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("exchange rate refresh incomplete: %v", failures)
	}
	return nil
}
