package service

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/fx"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/valuation"
)

// ValuationService computes portfolio valuation history by feeding stored data
// through the replay engine. Because the engine is deterministic, results are
// memoized per range keyed by a content hash of the inputs; any write to
// assets, transactions, prices, rates or settings changes the hash and the
// next request recomputes.
type ValuationService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	priceRepo       *repository.PriceRepository
	rateRepo        *repository.RateRepository
	settingsRepo    *repository.SettingsRepository

	defaultBaseCurrency string

	// Now anchors "today" for window resolution and cache keying; nil means
	// the current UTC date. Tests pin it for reproducibility.
	Now func() valuation.Day

	mu    sync.Mutex
	cache map[valuation.Range]cachedHistory
}

type cachedHistory struct {
	inputHash uint64
	history   model.ValuationHistory
}

// NewValuationService creates a new ValuationService with the provided
// repositories. defaultBaseCurrency applies when no settings row exists.
func NewValuationService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	priceRepo *repository.PriceRepository,
	rateRepo *repository.RateRepository,
	settingsRepo *repository.SettingsRepository,
	defaultBaseCurrency string,
) *ValuationService {
	return &ValuationService{
		assetRepo:           assetRepo,
		transactionRepo:     transactionRepo,
		priceRepo:           priceRepo,
		rateRepo:            rateRepo,
		settingsRepo:        settingsRepo,
		defaultBaseCurrency: defaultBaseCurrency,
		cache:               make(map[valuation.Range]cachedHistory),
	}
}

// GetHistory returns the daily valuation series for a range selector,
// computing it from the full ledger or serving a memoized result when
// neither the underlying data nor the calendar date has changed.
func (s *ValuationService) GetHistory(rangeStr string) (model.ValuationHistory, error) {
	r, err := valuation.ParseRange(rangeStr)
	if err != nil {
		return model.ValuationHistory{}, apperrors.ErrInvalidRange
	}

	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.ValuationHistory{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetHistory, err)
	}

	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return model.ValuationHistory{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetHistory, err)
	}

	// Only market-priced assets have a stored series; manually valued assets
	// are priced from their stored current price during the replay.
	pricedIDs := make([]string, 0, len(assets))
	for _, asset := range assets {
		if !asset.Kind.ManuallyValued() {
			pricedIDs = append(pricedIDs, asset.ID)
		}
	}
	priceHistory, err := s.priceRepo.GetPriceHistory(pricedIDs)
	if err != nil {
		return model.ValuationHistory{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetHistory, err)
	}

	rates, err := s.rateRepo.GetRates()
	if err != nil {
		return model.ValuationHistory{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetHistory, err)
	}

	baseCurrency := s.defaultBaseCurrency
	settings, err := s.settingsRepo.GetSettings()
	if err == nil && settings.BaseCurrency != "" {
		baseCurrency = settings.BaseCurrency
	} else if err != nil && !errors.Is(err, apperrors.ErrSettingsNotFound) {
		return model.ValuationHistory{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetHistory, err)
	}

	today := valuation.Today()
	if s.Now != nil {
		today = s.Now()
	}

	// Today is part of the hash: a replay's output depends on the current
	// date (window resolution and simulation end), so a cached series must
	// expire at the next UTC midnight even when no row changed.
	hash := hashInputs(assets, transactions, priceHistory, rates, baseCurrency, today)

	s.mu.Lock()
	if entry, ok := s.cache[r]; ok && entry.inputHash == hash {
		s.mu.Unlock()
		return entry.history, nil
	}
	s.mu.Unlock()

	result := valuation.Replay(valuation.Input{
		Assets:       assets,
		Transactions: transactions,
		PriceHistory: priceHistory,
		Convert:      fx.NewRateTable(rates).Convert,
		BaseCurrency: baseCurrency,
		Range:        r,
		Today:        today,
	})

	history := model.ValuationHistory{
		Range:        string(r),
		BaseCurrency: baseCurrency,
		Snapshots:    roundSnapshots(result.Snapshots),
		Warnings:     toWarnings(result.Diagnostics),
		Truncated:    result.Truncated,
	}

	s.mu.Lock()
	s.cache[r] = cachedHistory{inputHash: hash, history: history}
	s.mu.Unlock()

	return history, nil
}

// roundSnapshots rounds all monetary fields to two decimals for the API.
func roundSnapshots(snapshots []model.DailySnapshot) []model.DailySnapshot {
	rounded := make([]model.DailySnapshot, len(snapshots))
	for i, snapshot := range snapshots {
		rounded[i] = model.DailySnapshot{
			Date:              snapshot.Date,
			NetWorth:          round(snapshot.NetWorth),
			InvestedCost:      round(snapshot.InvestedCost),
			ProfitLoss:        round(snapshot.ProfitLoss),
			ProfitLossPercent: round(snapshot.ProfitLossPercent),
		}
	}
	return rounded
}

// toWarnings converts engine diagnostics into their API representation.
func toWarnings(diagnostics []valuation.Diagnostic) []model.ValuationWarning {
	if len(diagnostics) == 0 {
		return nil
	}
	warnings := make([]model.ValuationWarning, len(diagnostics))
	for i, diag := range diagnostics {
		warnings[i] = model.ValuationWarning{
			Code:          string(diag.Code),
			TransactionID: diag.TransactionID,
			AssetID:       diag.AssetID,
			Date:          diag.Date,
			Message:       diag.Message,
		}
	}
	return warnings
}

// hashInputs computes an FNV-1a content hash over every input that affects a
// replay. The iteration order of the price history map is pinned by hashing
// per-asset in asset order and per-date via the sorted date strings that the
// repository already returns; to keep it simple the inner map is folded
// order-independently with XOR.
func hashInputs(
	assets []model.Asset,
	transactions []model.Transaction,
	priceHistory map[string]map[string]float64,
	rates []model.ExchangeRate,
	baseCurrency string,
	today valuation.Day,
) uint64 {
	hasher := fnv.New64a()

	for _, asset := range assets {
		fmt.Fprintf(hasher, "a|%s|%s|%g|%g|%g|%s|%s\n",
			asset.ID, asset.Kind, asset.Quantity, asset.AverageCost, asset.CurrentPrice,
			asset.Currency, asset.DateAcquired)
	}
	for _, tx := range transactions {
		fmt.Fprintf(hasher, "t|%s|%s|%s|%s|%g|%g\n",
			tx.ID, tx.AssetID, tx.Kind, tx.Date, tx.QuantityChange, tx.Total)
	}
	for _, rate := range rates {
		fmt.Fprintf(hasher, "r|%s|%s|%g|%s\n", rate.FromCurrency, rate.ToCurrency, rate.Rate, rate.Date)
	}
	fmt.Fprintf(hasher, "b|%s\n", baseCurrency)
	fmt.Fprintf(hasher, "d|%s\n", today)

	sum := hasher.Sum64()

	for _, asset := range assets {
		for date, price := range priceHistory[asset.ID] {
			point := fnv.New64a()
			fmt.Fprintf(point, "p|%s|%s|%g\n", asset.ID, date, price)
			sum ^= point.Sum64()
		}
	}

	return sum
}
