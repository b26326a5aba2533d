package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole tags a message with its author
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a conversation thread. Messages are append-only.
type ChatMessage struct {
	ID        int64     `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat is a conversation thread scoped to one user. LastMessageAt drives
// the sort order of the chat list.
type Chat struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChatSummary is the list-view projection of a chat
type ChatSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int       `json:"message_count"`
	LastMessage   string    `json:"last_message"`
}
