package request

type CreateAssetRequest struct {
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	AverageCost  float64 `json:"averageCost"`
	CurrentPrice float64 `json:"currentPrice"`
	Currency     string  `json:"currency"`
	DateAcquired string  `json:"dateAcquired"`
}

type UpdateAssetRequest struct {
	Kind         *string  `json:"kind,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Symbol       *string  `json:"symbol,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	AverageCost  *float64 `json:"averageCost,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	DateAcquired *string  `json:"dateAcquired,omitempty"`
}
