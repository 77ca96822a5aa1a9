package services

import (
	"context"
	"encoding/json"
	"fmt"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/google/uuid"
)

// SessionService manages chat session lifecycle: created on new-chat,
// mutated by message appends, destroyed on explicit deletion.
type SessionService struct {
	store store.Store
}

// NewSessionService creates a new SessionService.
func NewSessionService(st store.Store) *SessionService {
	return &SessionService{store: st}
}

// mapSessionToResponse converts a DB session model to an API response DTO.
func mapSessionToResponse(dbSession *models.ChatSession) (*models.SessionResponse, error) {
	var messages []models.ChatMessage
	if len(dbSession.Messages) > 0 {
		if err := json.Unmarshal(dbSession.Messages, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse session messages: %w", err)
		}
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	return &models.SessionResponse{
		ID:        dbSession.ID,
		Title:     dbSession.Title,
		Provider:  dbSession.Provider,
		Model:     dbSession.Model,
		Settings:  dbSession.Settings,
		Messages:  messages,
		CreatedAt: dbSession.CreatedAt,
		UpdatedAt: dbSession.UpdatedAt,
	}, nil
}

// Create starts a new, empty session.
func (s *SessionService) Create(ctx context.Context, req models.CreateSessionRequest) (*models.SessionResponse, error) {
	title := req.Title
	if title == "" {
		title = "New chat"
	}

	dbSession, err := s.store.CreateSession(ctx, store.CreateSessionParams{
		ID:       uuid.New(),
		Title:    title,
		Provider: req.Provider,
		Model:    req.Model,
		Settings: req.Settings,
	})
	if err != nil {
		return nil, err
	}
	return mapSessionToResponse(dbSession)
}

// GetByID retrieves one session.
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*models.SessionResponse, error) {
	dbSession, err := s.store.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapSessionToResponse(dbSession)
}

// List returns all sessions, most recently updated first.
func (s *SessionService) List(ctx context.Context) ([]models.SessionResponse, error) {
	dbSessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.SessionResponse, 0, len(dbSessions))
	for i := range dbSessions {
		resp, err := mapSessionToResponse(&dbSessions[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *resp)
	}
	return sessions, nil
}

// AppendMessages appends messages to a session's ordered sequence.
func (s *SessionService) AppendMessages(ctx context.Context, id uuid.UUID, newMessages ...models.ChatMessage) error {
	dbSession, err := s.store.GetSessionByID(ctx, id)
	if err != nil {
		return err
	}

	var messages []models.ChatMessage
	if len(dbSession.Messages) > 0 {
		if err := json.Unmarshal(dbSession.Messages, &messages); err != nil {
			return fmt.Errorf("failed to parse session messages: %w", err)
		}
	}
	messages = append(messages, newMessages...)

	marshaled, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal session messages: %w", err)
	}
	_, err = s.store.UpdateSessionMessages(ctx, id, marshaled)
	return err
}

// Delete destroys one session.
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSession(ctx, id)
}
