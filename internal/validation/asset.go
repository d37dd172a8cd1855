package validation

import (
	"time"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

var validAssetKinds = map[model.AssetKind]bool{
	model.AssetKindEquity:     true,
	model.AssetKindFund:       true,
	model.AssetKindCrypto:     true,
	model.AssetKindCash:       true,
	model.AssetKindRealEstate: true,
	model.AssetKindLiability:  true,
	model.AssetKindOther:      true,
}

// ValidateAsset checks an asset payload before persistence.
func ValidateAsset(asset *model.Asset) error {
	fields := make(map[string]string)

	if asset.Name == "" {
		fields["name"] = "name is required"
	}
	if !validAssetKinds[asset.Kind] {
		fields["kind"] = "unrecognized asset kind"
	}
	if asset.Currency == "" {
		fields["currency"] = "currency is required"
	} else if len(asset.Currency) != 3 {
		fields["currency"] = "currency must be a 3-letter ISO code"
	}
	if asset.Quantity < 0 {
		fields["quantity"] = "quantity cannot be negative"
	}
	if asset.AverageCost < 0 {
		fields["averageCost"] = "average cost cannot be negative"
	}
	if asset.CurrentPrice < 0 {
		fields["currentPrice"] = "current price cannot be negative"
	}
	if asset.DateAcquired != "" {
		if _, err := time.Parse("2006-01-02", asset.DateAcquired); err != nil {
			fields["dateAcquired"] = "date acquired must be in YYYY-MM-DD format"
		}
	}
	if !asset.Kind.ManuallyValued() && asset.Symbol == "" {
		fields["symbol"] = "symbol is required for market-priced assets"
	}

	return newError(fields)
}
