package services

import (
	"context"
	"encoding/json"
	"errors"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"
)

// SettingsService stores and returns the opaque client settings blob
// (theme, default provider/model choices) verbatim.
type SettingsService struct {
	store store.Store
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(st store.Store) *SettingsService {
	return &SettingsService{store: st}
}

// Get returns the settings blob, or an empty object when none has been
// stored yet.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &models.AppSettings{Data: json.RawMessage("{}")}, nil
		}
		return nil, err
	}
	return settings, nil
}

// Put replaces the settings blob wholesale.
func (s *SettingsService) Put(ctx context.Context, data json.RawMessage) error {
	return s.store.UpsertSettings(ctx, data)
}
