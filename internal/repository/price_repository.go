package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// PriceRepository provides data access methods for the asset_price table.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPriceHistory retrieves the sparse price history for the given assets as
// a map of assetID -> date -> price, the shape the valuation engine consumes.
// Returns an empty map if assetIDs is empty.
func (r *PriceRepository) GetPriceHistory(assetIDs []string) (map[string]map[string]float64, error) {
	history := make(map[string]map[string]float64)
	if len(assetIDs) == 0 {
		return history, nil
	}

	placeholders := make([]string, len(assetIDs))
	args := make([]any, len(assetIDs))
	for i, id := range assetIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `
		SELECT asset_id, date, price
		FROM asset_price
		WHERE asset_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var assetID, date string
		var price float64
		if err := rows.Scan(&assetID, &date, &price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price table results: %w", err)
		}
		if history[assetID] == nil {
			history[assetID] = make(map[string]float64)
		}
		history[assetID][date] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_price table: %w", err)
	}

	return history, nil
}

// GetLatestPriceDate returns the most recent stored price date for an asset,
// or the empty string when no prices exist yet.
func (r *PriceRepository) GetLatestPriceDate(assetID string) (string, error) {
	var date sql.NullString
	err := r.db.QueryRow(`SELECT MAX(date) FROM asset_price WHERE asset_id = ?`, assetID).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to query latest price date: %w", err)
	}
	return date.String, nil
}

// InsertPrices upserts a batch of price points, replacing any existing row
// for the same asset and day. Returns the number of rows written.
func (r *PriceRepository) InsertPrices(ctx context.Context, prices []model.AssetPrice) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin price insert: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO asset_price (id, asset_id, date, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(asset_id, date) DO UPDATE SET price = excluded.price
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price insert: %w", err)
	}
	defer stmt.Close()

	for _, price := range prices {
		if _, err := stmt.ExecContext(ctx, price.ID, price.AssetID, price.Date, price.Price); err != nil {
			return 0, fmt.Errorf("failed to insert price for asset %s on %s: %w", price.AssetID, price.Date, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price insert: %w", err)
	}

	return len(prices), nil
}
