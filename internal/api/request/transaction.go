package request

type CreateTransactionRequest struct {
	AssetID        string  `json:"assetId"`
	Kind           string  `json:"kind"`
	Date           string  `json:"date"`
	QuantityChange float64 `json:"quantityChange"`
	PricePerUnit   float64 `json:"pricePerUnit"`
	Fee            float64 `json:"fee"`
	Total          float64 `json:"total"`
}

type UpdateTransactionRequest struct {
	AssetID        *string  `json:"assetId,omitempty"`
	Kind           *string  `json:"kind,omitempty"`
	Date           *string  `json:"date,omitempty"`
	QuantityChange *float64 `json:"quantityChange,omitempty"`
	PricePerUnit   *float64 `json:"pricePerUnit,omitempty"`
	Fee            *float64 `json:"fee,omitempty"`
	Total          *float64 `json:"total,omitempty"`
}
