package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

// AssetService handles business logic for asset operations.
type AssetService struct {
	assetRepo *repository.AssetRepository
}

// NewAssetService creates a new AssetService with the provided repository.
func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// GetAssets retrieves all tracked assets.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveAssets, err)
	}
	return assets, nil
}

// GetAsset retrieves a single asset by ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	if err := validation.ValidateUUID(assetID); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetAsset(assetID)
}

// CreateAsset validates and persists a new asset, assigning its ID and
// creation time.
func (s *AssetService) CreateAsset(ctx context.Context, asset *model.Asset) error {
	if err := validation.ValidateAsset(asset); err != nil {
		return err
	}

	asset.ID = uuid.New().String()
	asset.CreatedAt = time.Now().UTC()

	return s.assetRepo.InsertAsset(ctx, asset)
}

// UpdateAsset validates and persists changes to an existing asset.
func (s *AssetService) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	if err := validation.ValidateUUID(asset.ID); err != nil {
		return err
	}
	if err := validation.ValidateAsset(asset); err != nil {
		return err
	}
	return s.assetRepo.UpdateAsset(ctx, asset)
}

// DeleteAsset removes an asset and, via foreign keys, its transactions and
// price history.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	if err := validation.ValidateUUID(assetID); err != nil {
		return err
	}
	return s.assetRepo.DeleteAsset(ctx, assetID)
}
