package model

// DailySnapshot represents aggregate portfolio statistics for a single calendar day.
// Liability holdings subtract from NetWorth and are excluded from InvestedCost.
// All monetary values are expressed in the base currency and rounded to two
// decimal places by the service layer before leaving the API.
type DailySnapshot struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	NetWorth          float64 `json:"netWorth"`
	InvestedCost      float64 `json:"investedCost"`
	ProfitLoss        float64 `json:"profitLoss"`
	ProfitLossPercent float64 `json:"profitLossPercent"` // Exactly 0 when InvestedCost is 0
}

// ValuationWarning is a non-fatal data-quality finding surfaced by a valuation
// replay: a skipped transaction with an unparseable date, a missing exchange
// rate, or a truncated replay.
type ValuationWarning struct {
	Code          string `json:"code"`
	TransactionID string `json:"transactionId,omitempty"`
	AssetID       string `json:"assetId,omitempty"`
	Date          string `json:"date,omitempty"`
	Message       string `json:"message"`
}

// ValuationHistory is the full response for a history request: one snapshot
// per day in the requested window plus any warnings gathered during the replay.
type ValuationHistory struct {
	Range        string             `json:"range"`
	BaseCurrency string             `json:"baseCurrency"`
	Snapshots    []DailySnapshot    `json:"snapshots"`
	Warnings     []ValuationWarning `json:"warnings,omitempty"`
	Truncated    bool               `json:"truncated"` // true when the replay hit its iteration cap
}
