package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmolenaar/wealth-tracker/internal/api/response"
	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/service"
)

// PriceHandler handles HTTP requests for price refresh endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// RefreshAll handles POST requests to refresh prices for every market-priced
// asset and the portfolio's exchange rates. Per-asset failures are reported
// in the result body, not as an HTTP error.
//
// Endpoint: POST /api/price/refresh
// Response: 200 OK with PriceRefreshResult
// Error: 500 Internal Server Error if the batch cannot start
func (h *PriceHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshAllPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RefreshAsset handles POST requests to refresh the price history of one asset.
//
// Endpoint: POST /api/price/refresh/{uuid}
// Response: 200 OK with UpdatedAsset
// Error: 400 Bad Request if the asset is manually valued or has no symbol
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if the refresh fails
func (h *PriceHandler) RefreshAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	updated, err := h.priceService.RefreshAssetPrice(r.Context(), assetID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAssetNotPriced):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAssetNotPriced.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}
