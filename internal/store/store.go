package store

import (
	"context"
	"encoding/json"
	"errors"

	"linguahub-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// HistoryLimit bounds the translation history to the most recent
// entries; favorites are exempt from pruning.
const HistoryLimit = 50

// CreateSessionParams contains parameters for creating a chat session.
type CreateSessionParams struct {
	ID       uuid.UUID
	Title    string
	Provider models.Provider
	Model    string
	Settings models.ChatSettings
	Messages json.RawMessage // marshaled []models.ChatMessage
}

// Store defines the interface for persistence operations: one settings
// blob, one credential record, the bounded translation history and the
// chat session map.
type Store interface {
	// Provider credentials (single row, encrypted bytes)
	GetCredentials(ctx context.Context) (*models.StoredCredentials, error)
	UpsertCredentials(ctx context.Context, encrypted []byte) error

	// Settings blob
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	UpsertSettings(ctx context.Context, data json.RawMessage) error

	// Translation history
	CreateTranslation(ctx context.Context, rec models.TranslationRecord) error
	ListTranslations(ctx context.Context) ([]models.TranslationRecord, error)
	SetTranslationFavorite(ctx context.Context, id uuid.UUID, favorite bool) error
	DeleteTranslation(ctx context.Context, id uuid.UUID) error
	// PruneTranslations removes the oldest non-favorite entries beyond
	// keep. Favorites are never pruned.
	PruneTranslations(ctx context.Context, keep int) error

	// Chat sessions
	CreateSession(ctx context.Context, arg CreateSessionParams) (*models.ChatSession, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error)
	ListSessions(ctx context.Context) ([]models.ChatSession, error)
	UpdateSessionMessages(ctx context.Context, id uuid.UUID, messages json.RawMessage) (*models.ChatSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
