package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmolenaar/wealth-tracker/internal/api/handlers"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/testutil"
)

func TestValuationHistoryEndpoint(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	asset := testutil.NewAsset().WithCurrentPrice(120).Build(t, db)
	testutil.NewTransaction(asset.ID).
		WithDate("2024-01-02").
		WithQuantityChange(10).
		WithTotal(1000).
		Build(t, db)

	handler := handlers.NewValuationHandler(testutil.NewTestValuationService(t, db))

	t.Run("returns history for valid range", func(t *testing.T) {
		// Execute
		req := httptest.NewRequest("GET", "/api/valuation/history?range=all", nil)
		rec := httptest.NewRecorder()
		handler.History(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var history model.ValuationHistory
		if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if history.Range != "all" {
			t.Errorf("expected range all, got %s", history.Range)
		}
		if len(history.Snapshots) == 0 {
			t.Error("expected snapshots in response")
		}
		last := history.Snapshots[len(history.Snapshots)-1]
		if last.NetWorth != 1200 {
			t.Errorf("expected net worth 1200, got %v", last.NetWorth)
		}
	})

	t.Run("defaults to one month", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/valuation/history", nil)
		rec := httptest.NewRecorder()
		handler.History(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var history model.ValuationHistory
		if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if history.Range != "1m" {
			t.Errorf("expected default range 1m, got %s", history.Range)
		}
	})

	t.Run("rejects unknown range", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/valuation/history?range=2y", nil)
		rec := httptest.NewRecorder()
		handler.History(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
