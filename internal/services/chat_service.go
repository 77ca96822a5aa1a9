package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/providers"
	"linguahub-backend/internal/textutil"

	"github.com/google/uuid"
)

// ErrChatUnsupported is returned for providers without a chat path.
var ErrChatUnsupported = errors.New("provider not supported for chat")

// ChatService orchestrates multi-turn conversations: context windowing,
// system-instruction defaulting, provider routing and session
// persistence.
type ChatService struct {
	gemini   *providers.GeminiAdapter
	openai   *providers.OpenAIAdapter
	creds    *CredentialsService
	sessions *SessionService
}

// NewChatService creates a new ChatService.
func NewChatService(gemini *providers.GeminiAdapter, openai *providers.OpenAIAdapter, creds *CredentialsService, sessions *SessionService) *ChatService {
	return &ChatService{
		gemini:   gemini,
		openai:   openai,
		creds:    creds,
		sessions: sessions,
	}
}

// windowMessages keeps only the last maxContext messages; older history
// is dropped entirely, never summarized. maxContext <= 0 keeps
// everything.
func windowMessages(messages []models.ChatMessage, maxContext int) []models.ChatMessage {
	if maxContext <= 0 || len(messages) <= maxContext {
		return messages
	}
	return messages[len(messages)-maxContext:]
}

// Complete runs one chat turn and returns the assistant's reply.
//
// Cancellation is a distinguished outcome: when the caller aborts an
// in-flight request, the context's error is re-raised unchanged so it
// is never rendered as a provider failure.
func (s *ChatService) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("chat requires at least one message")
	}

	window := windowMessages(req.Messages, req.Settings.MaxContext)

	system := req.Settings.SystemInstruction
	if system == "" {
		system = providers.DefaultChatInstruction
	}

	var (
		reply string
		err   error
	)
	switch req.Provider {
	case models.ProviderGemini:
		reply, err = s.gemini.Chat(ctx, s.creds.Snapshot(), req.Model, system, window, req.Settings.Temperature)
	case models.ProviderOpenAI:
		reply, err = s.openai.Chat(ctx, s.creds.Snapshot(), req.Model, system, window, req.Settings.Temperature)
	default:
		return "", fmt.Errorf("%w: %s", ErrChatUnsupported, req.Provider)
	}
	if err != nil {
		// context.Canceled passes through untouched so callers can
		// distinguish an abort from a provider failure.
		return "", err
	}

	reply = textutil.QuoteDiagramLabels(reply)

	if req.SessionID != nil && s.sessions != nil {
		s.persistTurn(ctx, *req.SessionID, req.Messages[len(req.Messages)-1], reply)
	}

	return reply, nil
}

// persistTurn appends the user message and the assistant reply to the
// session. Persistence is best effort: the reply already exists, a
// storage failure must not discard it.
func (s *ChatService) persistTurn(ctx context.Context, sessionID uuid.UUID, userMessage models.ChatMessage, reply string) {
	assistant := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
	if err := s.sessions.AppendMessages(ctx, sessionID, userMessage, assistant); err != nil {
		log.Printf("WARN [ChatService] Failed to persist turn for session %s: %v", sessionID, err)
	}
}
