package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, title, provider, model, settings, messages, created_at, updated_at`

func scanSession(row pgx.Row) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	var provider string
	var settingsJSON []byte
	err := row.Scan(
		&session.ID,
		&session.Title,
		&provider,
		&session.Model,
		&settingsJSON,
		&session.Messages,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.Provider = models.Provider(provider)
	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &session.Settings); err != nil {
			return nil, fmt.Errorf("failed to parse session settings: %w", err)
		}
	}
	return session, nil
}

// CreateSession inserts a new chat session.
func (s *PostgresStore) CreateSession(ctx context.Context, arg store.CreateSessionParams) (*models.ChatSession, error) {
	log.Printf("[PostgresStore] CreateSession called for ID: %s, Title: %q", arg.ID, arg.Title)
	query := `
        INSERT INTO chat_sessions (id, title, provider, model, settings, messages)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + sessionColumns

	settingsJSON, err := json.Marshal(arg.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session settings: %w", err)
	}

	messages := arg.Messages
	if len(messages) == 0 {
		messages = json.RawMessage("[]")
	}

	session, err := scanSession(s.db.QueryRow(ctx, query,
		arg.ID, arg.Title, string(arg.Provider), arg.Model, settingsJSON, messages))
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateSession: insert failed for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error creating chat session: %w", err)
	}
	return session, nil
}

// GetSessionByID retrieves one session.
func (s *PostgresStore) GetSessionByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE id = $1`

	session, err := scanSession(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetSessionByID: query failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching chat session: %w", err)
	}
	return session, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *PostgresStore) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions ORDER BY updated_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListSessions: query failed: %v", err)
		return nil, fmt.Errorf("database error listing chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ChatSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning chat session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// UpdateSessionMessages replaces a session's message sequence and bumps
// updated_at.
func (s *PostgresStore) UpdateSessionMessages(ctx context.Context, id uuid.UUID, messages json.RawMessage) (*models.ChatSession, error) {
	query := `
        UPDATE chat_sessions
        SET messages = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + sessionColumns

	session, err := scanSession(s.db.QueryRow(ctx, query, id, messages))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] UpdateSessionMessages: update failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error updating chat session: %w", err)
	}
	return session, nil
}

// DeleteSession removes one session.
func (s *PostgresStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM chat_sessions WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteSession: delete failed for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting chat session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
