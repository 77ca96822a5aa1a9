package models

import (
	"time"
)

// Message roles. The core only ever produces "assistant" messages; "user"
// messages come from clients. Systems instructions are not part of the
// message sequence, they travel in ChatSettings.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation. Image, when
// present, is a base64 payload (bare or data URI) attached to the message.
// The ordered sequence of messages forms a conversation owned by a
// ChatSession.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Image     *string   `json:"image,omitempty"`
}
