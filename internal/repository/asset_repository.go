package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, kind, name, symbol, quantity, average_cost, current_price, currency, date_acquired, created_at`

// GetAssets retrieves all assets ordered by creation time.
func (r *AssetRepository) GetAssets() ([]model.Asset, error) {
	rows, err := r.db.Query(`SELECT ` + assetColumns + ` FROM asset ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by its ID.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) GetAsset(assetID string) (model.Asset, error) {
	row := r.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE id = ?`, assetID)

	asset, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// InsertAsset persists a new asset.
func (r *AssetRepository) InsertAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO asset (id, kind, name, symbol, quantity, average_cost, current_price, currency, date_acquired, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Kind,
		asset.Name,
		nullable(asset.Symbol),
		asset.Quantity,
		asset.AverageCost,
		asset.CurrentPrice,
		asset.Currency,
		nullable(asset.DateAcquired),
		asset.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites an existing asset's mutable fields.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		UPDATE asset
		SET kind = ?, name = ?, symbol = ?, quantity = ?, average_cost = ?, current_price = ?, currency = ?, date_acquired = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		asset.Kind,
		asset.Name,
		nullable(asset.Symbol),
		asset.Quantity,
		asset.AverageCost,
		asset.CurrentPrice,
		asset.Currency,
		nullable(asset.DateAcquired),
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// DeleteAsset removes an asset; transactions and prices cascade via foreign keys.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (model.Asset, error) {
	var asset model.Asset
	var symbol, dateAcquired, createdAt sql.NullString

	err := row.Scan(
		&asset.ID,
		&asset.Kind,
		&asset.Name,
		&symbol,
		&asset.Quantity,
		&asset.AverageCost,
		&asset.CurrentPrice,
		&asset.Currency,
		&dateAcquired,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Asset{}, err
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	asset.Symbol = symbol.String
	asset.DateAcquired = dateAcquired.String
	if createdAt.Valid {
		if parsed, err := parseTimestamp(createdAt.String); err == nil {
			asset.CreatedAt = parsed
		}
	}

	return asset, nil
}

func nullable(str string) any {
	if str == "" {
		return nil
	}
	return str
}
