package validation

import (
	"github.com/google/uuid"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
)

// ValidateUUID checks that an ID is present and is a valid UUID.
func ValidateUUID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrInvalidUUID
	}
	return nil
}

// ValidateUUIDs checks multiple IDs, returning the first failure.
func ValidateUUIDs(ids ...string) error {
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}
