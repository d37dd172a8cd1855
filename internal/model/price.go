package model

// AssetPrice represents a historical closing price for an asset on a calendar day.
type AssetPrice struct {
	ID      string  `json:"id"`
	AssetID string  `json:"assetId"`
	Date    string  `json:"date"` // YYYY-MM-DD
	Price   float64 `json:"price"`
}

// ExchangeRate represents a currency exchange rate for a specific date.
type ExchangeRate struct {
	ID           string  `json:"id"`
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
	Rate         float64 `json:"rate"`
	Date         string  `json:"date"` // YYYY-MM-DD
}

// PriceRefreshResult summarizes a bulk price refresh across assets.
// Success is true if at least one asset was updated.
type PriceRefreshResult struct {
	Success       bool                `json:"success"`
	UpdatedAssets []UpdatedAsset      `json:"updatedAssets"`
	Errors        []UpdatedAssetError `json:"errors"`
	TotalUpdated  int                 `json:"totalUpdated"`
	TotalErrors   int                 `json:"totalErrors"`
}

// UpdatedAsset represents an asset whose price history was successfully extended.
type UpdatedAsset struct {
	AssetID     string `json:"assetId"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	PricesAdded int    `json:"pricesAdded"`
}

// UpdatedAssetError represents an asset that failed to refresh with error details.
type UpdatedAssetError struct {
	AssetID string `json:"assetId"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Error   string `json:"error"`
}
