package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChatSession is the database representation of a conversation. Messages
// is the JSON-marshaled ordered []ChatMessage, stored in the JSONB
// 'messages' column of the 'chat_sessions' table.
type ChatSession struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Provider  Provider        `json:"provider"`
	Model     string          `json:"model"`
	Settings  ChatSettings    `json:"settings"`
	Messages  json.RawMessage `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TranslationRecord is one entry of the translation history. The history
// is bounded to the 50 most recent entries; favorites are exempt from
// pruning.
type TranslationRecord struct {
	ID             uuid.UUID `json:"id"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	Provider       Provider  `json:"provider"`
	Favorite       bool      `json:"favorite"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoredCredentials is the database representation of the provider
// credential record: one row, AES-GCM encrypted JSON.
type StoredCredentials struct {
	EncryptedCredentials []byte
	UpdatedAt            time.Time
}

// AppSettings is the opaque client settings blob (theme, default
// provider/model choices). The core stores and returns it verbatim.
type AppSettings struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}
