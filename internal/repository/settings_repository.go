package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
)

// SettingsRepository provides data access for the single-row settings table.
// The market-data provider token is fernet-encrypted at rest; rows written
// before a key was configured are stored in the clear and migrate to
// encrypted form on the next save.
type SettingsRepository struct {
	db  *sql.DB
	key *fernet.Key // nil disables token storage
}

// NewSettingsRepository creates a new SettingsRepository. encryptionKey is a
// base64 fernet key; an empty string disables provider-token persistence.
func NewSettingsRepository(db *sql.DB, encryptionKey string) (*SettingsRepository, error) {
	repo := &SettingsRepository{db: db}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		repo.key = key
	}

	return repo, nil
}

// GetSettings retrieves the settings row with the provider token decrypted.
// Returns apperrors.ErrSettingsNotFound when the row has not been created.
func (r *SettingsRepository) GetSettings() (model.Settings, error) {
	var settings model.Settings
	var token, updatedAt sql.NullString

	err := r.db.QueryRow(`SELECT base_currency, provider_token, updated_at FROM settings WHERE id = 1`).
		Scan(&settings.BaseCurrency, &token, &updatedAt)
	if err == sql.ErrNoRows {
		return model.Settings{}, apperrors.ErrSettingsNotFound
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to scan settings table results: %w", err)
	}

	if token.Valid && token.String != "" {
		settings.ProviderToken = r.decryptToken(token.String)
	}
	if updatedAt.Valid {
		if parsed, err := parseTimestamp(updatedAt.String); err == nil {
			settings.UpdatedAt = parsed
		}
	}

	return settings, nil
}

// SaveSettings upserts the settings row, encrypting the provider token when
// an encryption key is configured.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings model.Settings) error {
	token := settings.ProviderToken
	if token != "" && r.key != nil {
		encrypted, err := fernet.EncryptAndSign([]byte(token), r.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt provider token: %w", err)
		}
		token = string(encrypted)
	}

	query := `
		INSERT INTO settings (id, base_currency, provider_token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_currency = excluded.base_currency,
			provider_token = excluded.provider_token,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, settings.BaseCurrency, token, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// decryptToken returns the decrypted token, or the stored value unchanged
// when it predates encryption or no key is configured.
func (r *SettingsRepository) decryptToken(stored string) string {
	if r.key == nil {
		return stored
	}
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{r.key})
	if plain == nil {
		return stored
	}
	return string(plain)
}
