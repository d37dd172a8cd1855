package handlers

import (
	"errors"
	"net/http"

	"github.com/jmolenaar/wealth-tracker/internal/api/request"
	"github.com/jmolenaar/wealth-tracker/internal/api/response"
	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/service"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

// SettingsHandler handles HTTP requests for application settings endpoints.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET requests for the application settings.
//
// Endpoint: GET /api/settings
// Response: 200 OK with Settings (provider token omitted)
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	// The token never leaves the API.
	settings.ProviderToken = ""

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests to update the application settings.
//
// Endpoint: PUT /api/settings
// Request Body: UpdateSettingsRequest
// Response: 200 OK with updated Settings (provider token omitted)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if update fails
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settings := model.Settings{
		BaseCurrency:  req.BaseCurrency,
		ProviderToken: req.ProviderToken,
	}

	if err := h.settingsService.UpdateSettings(r.Context(), &settings); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateSettings.Error(), err.Error())
		return
	}

	settings.ProviderToken = ""
	response.RespondJSON(w, http.StatusOK, settings)
}
