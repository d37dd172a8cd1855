package model

import "time"

// Settings represents the single application settings row.
// ProviderToken is stored encrypted at rest and decrypted by the repository.
type Settings struct {
	BaseCurrency  string    `json:"baseCurrency"`
	ProviderToken string    `json:"providerToken,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
