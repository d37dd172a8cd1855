package valuation_test

import (
	"reflect"
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/valuation"
)

// TestBuildPriceIndex_MalformedDates tests that a bad date key skips only
// that price point and reports it, leaving the rest of the series usable.
func TestBuildPriceIndex_MalformedDates(t *testing.T) {
	history := map[string]map[string]float64{
		"a1": {
			"2024-01-02": 100,
			"02-01-2024": 95, // wrong format
			"2024-01-05": 110,
		},
	}

	_, diags := valuation.BuildPriceIndex(history)

	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic for the malformed price date, got %d", len(diags))
	}
	if diags[0].Code != valuation.DiagMalformedDate || diags[0].AssetID != "a1" {
		t.Errorf("Expected malformed-date diagnostic for asset a1, got %+v", diags[0])
	}
}

// TestBuildPriceIndex_DeterministicDiagnostics tests that diagnostics come
// out in the same order on every call, independent of map iteration order.
func TestBuildPriceIndex_DeterministicDiagnostics(t *testing.T) {
	history := map[string]map[string]float64{
		"b2": {"05-01-2024": 50, "2024-01-06": 55, "06-01-2024": 52},
		"a1": {"2024-01-02": 100, "02-01-2024": 95, "03-01-2024": 97},
		"c3": {"2024-01-09": 10},
	}

	_, first := valuation.BuildPriceIndex(history)
	if len(first) != 4 {
		t.Fatalf("Expected 4 diagnostics, got %d", len(first))
	}

	for i := 0; i < 20; i++ {
		_, diags := valuation.BuildPriceIndex(history)
		if !reflect.DeepEqual(diags, first) {
			t.Fatalf("Diagnostics order changed between calls:\n%+v\nvs\n%+v", first, diags)
		}
	}

	want := []struct{ assetID, date string }{
		{"a1", "02-01-2024"},
		{"a1", "03-01-2024"},
		{"b2", "05-01-2024"},
		{"b2", "06-01-2024"},
	}
	for i, w := range want {
		if first[i].AssetID != w.assetID || first[i].Date != w.date {
			t.Errorf("Diagnostic %d: expected %s/%s, got %s/%s",
				i, w.assetID, w.date, first[i].AssetID, first[i].Date)
		}
	}
}
