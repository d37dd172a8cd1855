package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
	"github.com/jmolenaar/wealth-tracker/internal/model"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/validation"
)

// SettingsService handles business logic for application settings.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository

	defaultBaseCurrency string
}

// NewSettingsService creates a new SettingsService with the provided repository.
func NewSettingsService(settingsRepo *repository.SettingsRepository, defaultBaseCurrency string) *SettingsService {
	return &SettingsService{
		settingsRepo:        settingsRepo,
		defaultBaseCurrency: defaultBaseCurrency,
	}
}

// GetSettings retrieves the application settings, falling back to configured
// defaults when no settings row exists yet.
func (s *SettingsService) GetSettings() (model.Settings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if errors.Is(err, apperrors.ErrSettingsNotFound) {
		return model.Settings{BaseCurrency: s.defaultBaseCurrency}, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSettings, err)
	}
	return settings, nil
}

// UpdateSettings validates and persists the application settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *model.Settings) error {
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToUpdateSettings, err)
	}
	return nil
}
