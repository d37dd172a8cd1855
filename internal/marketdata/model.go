package marketdata

// Response represents the raw JSON response from the provider's chart API.
// It maps directly to the wire format: one result object carrying symbol
// metadata, Unix timestamps, and parallel arrays of quote indicators.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// ClosePoint is one daily closing price, keyed by its calendar date.
type ClosePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD, UTC
	Close float64 `json:"close"`
}

// Chart is the parsed, date-normalized form of a provider response.
type Chart struct {
	Symbol   string       `json:"symbol"`
	Currency string       `json:"currency"`
	Points   []ClosePoint `json:"points"`
}
