package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves the complete transaction ledger sorted by date
// ascending, with creation time as tiebreaker so same-day entries keep their
// recorded order. The valuation engine always replays from the full history.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, kind, date, quantity_change, price_per_unit, fee, total, created_at
		FROM "transaction"
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionsForAsset retrieves all transactions for one asset in ledger order.
func (r *TransactionRepository) GetTransactionsForAsset(assetID string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, kind, date, quantity_change, price_per_unit, fee, total, created_at
		FROM "transaction"
		WHERE asset_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, asset_id, kind, date, quantity_change, price_per_unit, fee, total, created_at
		FROM "transaction"
		WHERE id = ?
	`

	tx, err := scanTransaction(r.db.QueryRow(query, transactionID))
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// InsertTransaction persists a new ledger entry.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, kind, date, quantity_change, price_per_unit, fee, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AssetID,
		tx.Kind,
		tx.Date,
		tx.QuantityChange,
		tx.PricePerUnit,
		tx.Fee,
		tx.Total,
		tx.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites an existing ledger entry.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET asset_id = ?, kind = ?, date = ?, quantity_change = ?, price_per_unit = ?, fee = ?, total = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		tx.AssetID,
		tx.Kind,
		tx.Date,
		tx.QuantityChange,
		tx.PricePerUnit,
		tx.Fee,
		tx.Total,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a ledger entry.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var tx model.Transaction
	var createdAt sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.AssetID,
		&tx.Kind,
		&tx.Date,
		&tx.QuantityChange,
		&tx.PricePerUnit,
		&tx.Fee,
		&tx.Total,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	if createdAt.Valid {
		if parsed, err := parseTimestamp(createdAt.String); err == nil {
			tx.CreatedAt = parsed
		}
	}

	return tx, nil
}
