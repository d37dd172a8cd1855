package fx_test

import (
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/fx"
	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// TestRateTable_Convert tests conversion across direct, inverse, identity,
// and missing pairs.
func TestRateTable_Convert(t *testing.T) {
	table := fx.NewRateTable([]model.ExchangeRate{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: 0.9, Date: "2024-01-01"},
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: 0.8, Date: "2024-06-01"}, // later row wins
	})

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
		wantOK bool
	}{
		{name: "direct pair uses latest rate", amount: 100, from: "USD", to: "EUR", want: 80, wantOK: true},
		{name: "inverse pair", amount: 80, from: "EUR", to: "USD", want: 100, wantOK: true},
		{name: "identity", amount: 42, from: "EUR", to: "EUR", want: 42, wantOK: true},
		{name: "empty source passes through", amount: 42, from: "", to: "EUR", want: 42, wantOK: true},
		{name: "missing pair returns raw amount", amount: 100, from: "GBP", to: "JPY", want: 100, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Convert(tt.amount, tt.from, tt.to)

			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}
