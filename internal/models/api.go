package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// TranslateRequest defines the expected body for the translate endpoint.
// ImageBase64 may be a bare base64 payload or a full data URI; adapters
// normalize it. Industry selects a domain-specific system instruction and
// defaults to "General".
type TranslateRequest struct {
	Provider    Provider `json:"provider"`
	Text        string   `json:"text"`
	SourceLang  string   `json:"source_lang"`
	TargetLang  string   `json:"target_lang"`
	ImageBase64 *string  `json:"image_base64,omitempty"`
	Model       string   `json:"model"`
	Industry    string   `json:"industry,omitempty"`
}

// ChatRequest defines the expected body for the chat endpoint.
// When SessionID is set, the resulting user/assistant exchange is appended
// to that session after a successful completion.
type ChatRequest struct {
	Provider  Provider      `json:"provider"`
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	Settings  ChatSettings  `json:"settings"`
	SessionID *uuid.UUID    `json:"session_id,omitempty"`
}

// ChatSettings carries the per-conversation tuning knobs.
type ChatSettings struct {
	MaxContext        int     `json:"max_context"`
	Temperature       float64 `json:"temperature"`
	SystemInstruction string  `json:"system_instruction,omitempty"`
}

// SearchRequest defines the expected body for the search endpoint.
type SearchRequest struct {
	Query string `json:"query"`
	Model string `json:"model"`
}

// SummarizeRequest defines the expected body for the page-summary endpoint.
type SummarizeRequest struct {
	URL   string `json:"url"`
	Model string `json:"model"`
}

// UpdateCredentialsRequest replaces the provider credential record wholesale.
// Last write wins; no field-level validation is performed here.
type UpdateCredentialsRequest struct {
	Credentials ProviderCredentials `json:"credentials"`
}

// SetFavoriteRequest toggles the favorite flag on a history entry.
type SetFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// CreateSessionRequest defines the body for creating a new chat session.
type CreateSessionRequest struct {
	Title    string       `json:"title"`
	Provider Provider     `json:"provider"`
	Model    string       `json:"model"`
	Settings ChatSettings `json:"settings"`
}

// AppendMessageRequest appends one message to an existing session.
type AppendMessageRequest struct {
	Message ChatMessage `json:"message"`
}

// --- Response Structs ---

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TranslateResponse carries the canonical text output of a translation.
type TranslateResponse struct {
	Text string `json:"text"`
}

// ChatResponse carries the assistant's reply for one chat turn.
type ChatResponse struct {
	Text string `json:"text"`
}

// Source is one canonical search citation. Snippet is optional; Wikipedia
// extracts and raw web-search results populate it, grounding citations
// usually do not.
type Source struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchResponse is the synthesized answer plus its merged source list.
type SearchResponse struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// SummarizeResponse carries the structured-Markdown page summary.
type SummarizeResponse struct {
	Text string `json:"text"`
}

// CredentialsResponse returns the credential record with secrets masked.
// Raw keys are never returned once stored.
type CredentialsResponse struct {
	Credentials ProviderCredentials `json:"credentials"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// SessionResponse is the standard representation of a chat session.
type SessionResponse struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Provider  Provider      `json:"provider"`
	Model     string        `json:"model"`
	Settings  ChatSettings  `json:"settings"`
	Messages  []ChatMessage `json:"messages"`
	UpdatedAt time.Time     `json:"updated_at"`
	CreatedAt time.Time     `json:"created_at"`
}

// ListSessionsResponse wraps the session list.
type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// ListHistoryResponse wraps the translation history list.
type ListHistoryResponse struct {
	History []TranslationRecord `json:"history"`
}

// ModelCatalogResponse lists the known model identifiers per provider.
// The core does not enforce this pairing; it exists so clients can.
type ModelCatalogResponse struct {
	Providers map[Provider][]string `json:"providers"`
}
