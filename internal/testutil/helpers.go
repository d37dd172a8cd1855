package testutil

import (
	"database/sql"
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/service"
)

// NewTestAssetService creates an AssetService wired to the given test database.
func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()
	return service.NewAssetService(repository.NewAssetRepository(db))
}

// NewTestTransactionService creates a TransactionService wired to the given test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAssetRepository(db),
	)
}

// NewTestValuationService creates a ValuationService wired to the given test
// database, with EUR as the fallback base currency.
func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()

	settingsRepo, err := repository.NewSettingsRepository(db, "")
	if err != nil {
		t.Fatalf("Failed to create settings repository: %v", err)
	}

	return service.NewValuationService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewPriceRepository(db),
		repository.NewRateRepository(db),
		settingsRepo,
		"EUR",
	)
}
