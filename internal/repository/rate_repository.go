package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// RateRepository provides data access methods for the exchange_rate table.
type RateRepository struct {
	db *sql.DB
}

// NewRateRepository creates a new RateRepository with the provided database connection.
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetRates retrieves all stored exchange rates in ascending date order, so a
// rate table built from the result keeps the most recent rate per pair.
func (r *RateRepository) GetRates() ([]model.ExchangeRate, error) {
	query := `
		SELECT id, from_currency, to_currency, rate, date
		FROM exchange_rate
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}
	for rows.Next() {
		var rate model.ExchangeRate
		err := rows.Scan(&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &rate.Rate, &rate.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}

	return rates, nil
}

// UpsertRate writes a rate for a currency pair and date, replacing an
// existing row for the same pair and day.
func (r *RateRepository) UpsertRate(ctx context.Context, rate model.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, rate, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(from_currency, to_currency, date) DO UPDATE SET rate = excluded.rate
	`
	_, err := r.db.ExecContext(ctx, query, rate.ID, rate.FromCurrency, rate.ToCurrency, rate.Rate, rate.Date)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}
