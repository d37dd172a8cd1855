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

// TransactionHandler handles HTTP requests for ledger endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve the complete ledger.
// Returns transactions enriched with their asset names, in ledger order.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of TransactionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.transactionService.GetTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// TransactionsPerAsset handles GET requests to retrieve one asset's ledger entries.
//
// Endpoint: GET /api/transaction/asset/{uuid}
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) TransactionsPerAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	transactions, err := h.transactionService.GetTransactionsForAsset(assetID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single ledger entry by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a new ledger entry.
// The referenced asset must exist; a zero total is derived from quantity,
// price and fee.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the referenced asset does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction := model.Transaction{
		AssetID:        req.AssetID,
		Kind:           model.TransactionKind(req.Kind),
		Date:           req.Date,
		QuantityChange: req.QuantityChange,
		PricePerUnit:   req.PricePerUnit,
		Fee:            req.Fee,
		Total:          req.Total,
	}

	if err := h.transactionService.CreateTransaction(r.Context(), &transaction); err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidUUID), errors.Is(err, apperrors.ErrEmptyID):
			response.RespondError(w, http.StatusBadRequest, "invalid asset ID", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing ledger entry.
// Fields omitted from the request body keep their current values.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	applyTransactionUpdate(&transaction, req)

	if err := h.transactionService.UpdateTransaction(r.Context(), &transaction); err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a ledger entry.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func applyTransactionUpdate(transaction *model.Transaction, req request.UpdateTransactionRequest) {
	if req.AssetID != nil {
		transaction.AssetID = *req.AssetID
	}
	if req.Kind != nil {
		transaction.Kind = model.TransactionKind(*req.Kind)
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	if req.QuantityChange != nil {
		transaction.QuantityChange = *req.QuantityChange
	}
	if req.PricePerUnit != nil {
		transaction.PricePerUnit = *req.PricePerUnit
	}
	if req.Fee != nil {
		transaction.Fee = *req.Fee
	}
	if req.Total != nil {
		transaction.Total = *req.Total
	}
}
