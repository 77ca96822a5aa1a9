package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure PostgresStore implements the Store interface.
var _ store.Store = (*PostgresStore)(nil)

// PostgresStore implements store.Store backed by a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// --- Provider credentials (single row) ---

// GetCredentials fetches the encrypted provider credential record.
func (s *PostgresStore) GetCredentials(ctx context.Context) (*models.StoredCredentials, error) {
	query := `SELECT encrypted_credentials, updated_at FROM provider_credentials WHERE id = 1`

	rec := &models.StoredCredentials{}
	err := s.db.QueryRow(ctx, query).Scan(&rec.EncryptedCredentials, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetCredentials: query failed: %v", err)
		return nil, fmt.Errorf("database error fetching credentials: %w", err)
	}
	return rec, nil
}

// UpsertCredentials replaces the encrypted credential record wholesale.
func (s *PostgresStore) UpsertCredentials(ctx context.Context, encrypted []byte) error {
	query := `
        INSERT INTO provider_credentials (id, encrypted_credentials, updated_at)
        VALUES (1, $1, NOW())
        ON CONFLICT (id) DO UPDATE SET encrypted_credentials = $1, updated_at = NOW()`

	if _, err := s.db.Exec(ctx, query, encrypted); err != nil {
		log.Printf("ERROR [PostgresStore] UpsertCredentials: exec failed: %v", err)
		return fmt.Errorf("database error storing credentials: %w", err)
	}
	return nil
}

// --- Settings blob ---

// GetSettings fetches the opaque client settings blob.
func (s *PostgresStore) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	query := `SELECT data, updated_at FROM app_settings WHERE id = 1`

	settings := &models.AppSettings{}
	err := s.db.QueryRow(ctx, query).Scan(&settings.Data, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetSettings: query failed: %v", err)
		return nil, fmt.Errorf("database error fetching settings: %w", err)
	}
	return settings, nil
}

// UpsertSettings replaces the settings blob wholesale.
func (s *PostgresStore) UpsertSettings(ctx context.Context, data json.RawMessage) error {
	query := `
        INSERT INTO app_settings (id, data, updated_at)
        VALUES (1, $1, NOW())
        ON CONFLICT (id) DO UPDATE SET data = $1, updated_at = NOW()`

	if _, err := s.db.Exec(ctx, query, data); err != nil {
		log.Printf("ERROR [PostgresStore] UpsertSettings: exec failed: %v", err)
		return fmt.Errorf("database error storing settings: %w", err)
	}
	return nil
}
