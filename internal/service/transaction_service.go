package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

// TransactionService handles business logic for ledger entries.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService with the provided repositories.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransactions retrieves the full ledger enriched with asset names.
func (s *TransactionService) GetTransactions() ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, err
	}
	namesByID := make(map[string]string, len(assets))
	for _, asset := range assets {
		namesByID[asset.ID] = asset.Name
	}

	responses := make([]model.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, model.TransactionResponse{
			ID:             tx.ID,
			AssetID:        tx.AssetID,
			AssetName:      namesByID[tx.AssetID],
			Kind:           tx.Kind,
			Date:           tx.Date,
			QuantityChange: tx.QuantityChange,
			PricePerUnit:   tx.PricePerUnit,
			Fee:            tx.Fee,
			Total:          tx.Total,
		})
	}

	return responses, nil
}

// GetTransactionsForAsset retrieves the ledger entries of one asset.
func (s *TransactionService) GetTransactionsForAsset(assetID string) ([]model.Transaction, error) {
	if err := validation.ValidateUUID(assetID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactionsForAsset(assetID)
}

// GetTransaction retrieves a single ledger entry by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	if err := validation.ValidateUUID(transactionID); err != nil {
		return model.Transaction{}, err
	}
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction validates and persists a new ledger entry. The referenced
// asset must exist. A zero Total defaults to |quantityChange| * pricePerUnit
// plus the fee.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := validation.ValidateUUID(tx.AssetID); err != nil {
		return err
	}
	if _, err := s.assetRepo.GetAsset(tx.AssetID); err != nil {
		return err
	}

	applyTotalDefault(tx)
	if err := validation.ValidateTransaction(tx); err != nil {
		return err
	}

	tx.ID = uuid.New().String()
	tx.CreatedAt = time.Now().UTC()

	return s.transactionRepo.InsertTransaction(ctx, tx)
}

// UpdateTransaction validates and persists changes to an existing ledger entry.
func (s *TransactionService) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := validation.ValidateUUIDs(tx.ID, tx.AssetID); err != nil {
		return err
	}

	applyTotalDefault(tx)
	if err := validation.ValidateTransaction(tx); err != nil {
		return err
	}

	return s.transactionRepo.UpdateTransaction(ctx, tx)
}

// DeleteTransaction removes a ledger entry.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := validation.ValidateUUID(transactionID); err != nil {
		return err
	}
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// applyTotalDefault fills in the cash-flow magnitude when the caller omitted
// it. Dividends keep an explicit total since they carry no quantity.
func applyTotalDefault(tx *model.Transaction) {
	if tx.Total != 0 || tx.Kind == model.TransactionDividend {
		return
	}
	tx.Total = round(math.Abs(tx.QuantityChange)*tx.PricePerUnit + tx.Fee)
}
