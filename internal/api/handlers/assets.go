package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmolenaar/wealth-tracker/internal/api/request"
	"github.com/jmolenaar/wealth-tracker/internal/api/response"
	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/service"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the assetService.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AllAssets handles GET requests to retrieve all tracked assets.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) AllAssets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.assetService.GetAssets()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to create a new asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset := model.Asset{
		Kind:         model.AssetKind(req.Kind),
		Name:         req.Name,
		Symbol:       req.Symbol,
		Quantity:     req.Quantity,
		AverageCost:  req.AverageCost,
		CurrentPrice: req.CurrentPrice,
		Currency:     req.Currency,
		DateAcquired: req.DateAcquired,
	}

	if err := h.assetService.CreateAsset(r.Context(), &asset); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to update an existing asset.
// Fields omitted from the request body keep their current values.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest (all fields optional)
// Response: 200 OK with updated Asset
// Error: 400 Bad Request if asset ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if update fails
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	applyAssetUpdate(&asset, req)

	if err := h.assetService.UpdateAsset(r.Context(), &asset); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset and its history.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if deletion fails
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(r.Context(), assetID); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func applyAssetUpdate(asset *model.Asset, req request.UpdateAssetRequest) {
	if req.Kind != nil {
		asset.Kind = model.AssetKind(*req.Kind)
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Symbol != nil {
		asset.Symbol = *req.Symbol
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.AverageCost != nil {
		asset.AverageCost = *req.AverageCost
	}
	if req.CurrentPrice != nil {
		asset.CurrentPrice = *req.CurrentPrice
	}
	if req.Currency != nil {
		asset.Currency = *req.Currency
	}
	if req.DateAcquired != nil {
		asset.DateAcquired = *req.DateAcquired
	}
}
