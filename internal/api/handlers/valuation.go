package handlers

import (
	"errors"
	"net/http"

	"github.com/jmolenaar/wealth-tracker/internal/api/response"
	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/service"
)

// ValuationHandler handles HTTP requests for portfolio valuation endpoints.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler with the provided service dependency.
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// History handles GET requests for the daily valuation series.
// The range query parameter selects the window: 1w, 1m, 3m, 6m, 1y or all
// (default 1m). Data-quality warnings from the replay ride along in the
// response instead of failing it.
//
// Endpoint: GET /api/valuation/history?range=1m
// Response: 200 OK with ValuationHistory
// Error: 400 Bad Request if the range selector is unrecognized
// Error: 500 Internal Server Error if the computation fails
func (h *ValuationHandler) History(w http.ResponseWriter, r *http.Request) {
	rangeStr := r.URL.Query().Get("range")
	if rangeStr == "" {
		rangeStr = "1m"
	}

	history, err := h.valuationService.GetHistory(rangeStr)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), rangeStr)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
