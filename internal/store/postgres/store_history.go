package postgres

import (
	"context"
	"fmt"
	"log"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/google/uuid"
)

// CreateTranslation inserts one history entry.
func (s *PostgresStore) CreateTranslation(ctx context.Context, rec models.TranslationRecord) error {
	query := `
        INSERT INTO translation_history
            (id, source_text, translated_text, source_lang, target_lang, provider, favorite, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.Exec(ctx, query,
		rec.ID, rec.SourceText, rec.TranslatedText,
		rec.SourceLang, rec.TargetLang, string(rec.Provider),
		rec.Favorite, rec.CreatedAt,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateTranslation: insert failed for ID %s: %v", rec.ID, err)
		return fmt.Errorf("database error creating translation record: %w", err)
	}
	return nil
}

// ListTranslations returns the history, newest first.
func (s *PostgresStore) ListTranslations(ctx context.Context) ([]models.TranslationRecord, error) {
	query := `
        SELECT id, source_text, translated_text, source_lang, target_lang, provider, favorite, created_at
        FROM translation_history
        ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListTranslations: query failed: %v", err)
		return nil, fmt.Errorf("database error listing translation history: %w", err)
	}
	defer rows.Close()

	var records []models.TranslationRecord
	for rows.Next() {
		var rec models.TranslationRecord
		var provider string
		if err := rows.Scan(&rec.ID, &rec.SourceText, &rec.TranslatedText,
			&rec.SourceLang, &rec.TargetLang, &provider, &rec.Favorite, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("database error scanning translation record: %w", err)
		}
		rec.Provider = models.Provider(provider)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SetTranslationFavorite toggles the favorite flag on one entry.
func (s *PostgresStore) SetTranslationFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	query := `UPDATE translation_history SET favorite = $2 WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id, favorite)
	if err != nil {
		log.Printf("ERROR [PostgresStore] SetTranslationFavorite: update failed for ID %s: %v", id, err)
		return fmt.Errorf("database error updating translation record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTranslation removes one entry.
func (s *PostgresStore) DeleteTranslation(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM translation_history WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteTranslation: delete failed for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting translation record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// PruneTranslations deletes the oldest non-favorite entries beyond keep.
// Favorites never count toward the limit and are never deleted.
func (s *PostgresStore) PruneTranslations(ctx context.Context, keep int) error {
	query := `
        DELETE FROM translation_history
        WHERE favorite = FALSE AND id NOT IN (
            SELECT id FROM translation_history
            WHERE favorite = FALSE
            ORDER BY created_at DESC
            LIMIT $1
        )`

	if _, err := s.db.Exec(ctx, query, keep); err != nil {
		log.Printf("ERROR [PostgresStore] PruneTranslations: delete failed: %v", err)
		return fmt.Errorf("database error pruning translation history: %w", err)
	}
	return nil
}
