package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSettingsNotFound indicates the settings row has not been initialized.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidRange indicates an unrecognized history range selector.
	ErrInvalidRange = errors.New("invalid range selector")

	// ErrInvalidAssetKind indicates an unrecognized asset kind value.
	ErrInvalidAssetKind = errors.New("invalid asset kind")

	// ErrInvalidTransactionKind indicates an unrecognized transaction kind value.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrAssetNotPriced indicates a refresh was requested for an asset that is
	// manually valued or has no symbol configured.
	ErrAssetNotPriced = errors.New("asset has no market price feed")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetHistory           = errors.New("failed to compute valuation history")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToUpdateSettings       = errors.New("failed to update settings")
)
