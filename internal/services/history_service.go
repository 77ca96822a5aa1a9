package services

import (
	"context"
	"fmt"
	"log"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/google/uuid"
)

// HistoryService manages the translation history: bounded to the 50
// most recent entries, with favorites exempt from pruning.
type HistoryService struct {
	store store.Store
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st}
}

// Record inserts one entry and prunes the non-favorite overflow.
func (s *HistoryService) Record(ctx context.Context, rec models.TranslationRecord) error {
	if err := s.store.CreateTranslation(ctx, rec); err != nil {
		return err
	}
	if err := s.store.PruneTranslations(ctx, store.HistoryLimit); err != nil {
		// The entry itself is stored; an overflow that lingers one call
		// longer is harmless.
		log.Printf("WARN [HistoryService] Prune failed: %v", err)
	}
	return nil
}

// List returns the history, newest first.
func (s *HistoryService) List(ctx context.Context) ([]models.TranslationRecord, error) {
	records, err := s.store.ListTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if records == nil {
		records = []models.TranslationRecord{}
	}
	return records, nil
}

// SetFavorite toggles the favorite flag of one entry.
func (s *HistoryService) SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	return s.store.SetTranslationFavorite(ctx, id, favorite)
}

// Delete removes one entry.
func (s *HistoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteTranslation(ctx, id)
}
