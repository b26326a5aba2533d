package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexai-backend/llm"
	"lexai-backend/models"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage is returned when a chat message has no content
	ErrEmptyMessage = errors.New("message is required")

	// ErrEmptyQuestion is returned when a quick-ask question has no content
	ErrEmptyQuestion = errors.New("question is required")
)

// Chat titles are derived from the first message
const maxTitleLen = 60

// The model sees at most this many recent messages per turn
const chatHistoryWindow = 20

// ChatStore persists chat threads and messages
type ChatStore interface {
	Create(ctx context.Context, chat *models.Chat) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Chat, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ChatSummary, error)
	AddMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]*models.ChatMessage, error)
	LastMessages(ctx context.Context, chatID uuid.UUID, n int) ([]*models.ChatMessage, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ChatService drives the legal assistant conversations
type ChatService struct {
	completer  Completer
	chats      ChatStore
	activities ActivityRecorder
}

// NewChatService creates a new chat service
func NewChatService(completer Completer, chats ChatStore, activities ActivityRecorder) *ChatService {
	return &ChatService{
		completer:  completer,
		chats:      chats,
		activities: activities,
	}
}

// SendMessage appends a user message to a chat (creating the chat when
// chatID is nil) and returns the assistant reply. New chats take their
// title from the first message.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, chatID *uuid.UUID, message, category string) (*models.Chat, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, "", ErrEmptyMessage
	}

	var chat *models.Chat
	var err error

	if chatID != nil {
		chat, err = s.chats.GetByID(ctx, userID, *chatID)
		if err != nil {
			return nil, "", err
		}
	} else {
		if category == "" {
			category = "general"
		}
		chat = &models.Chat{
			UserID:   userID,
			Title:    chatTitle(message),
			Category: category,
		}
		if err := s.chats.Create(ctx, chat); err != nil {
			return nil, "", err
		}
	}

	userMsg := &models.ChatMessage{
		ChatID:  chat.ID,
		Role:    models.RoleUser,
		Content: message,
	}
	if err := s.chats.AddMessage(ctx, userMsg); err != nil {
		return nil, "", err
	}

	history, err := s.chats.LastMessages(ctx, chat.ID, chatHistoryWindow)
	if err != nil {
		return nil, "", err
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: ChatSystemPrompt})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	reply, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.5,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, "", err
	}

	assistantMsg := &models.ChatMessage{
		ChatID:  chat.ID,
		Role:    models.RoleAssistant,
		Content: reply,
	}
	if err := s.chats.AddMessage(ctx, assistantMsg); err != nil {
		return nil, "", err
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityChatMessage,
		Description: fmt.Sprintf("Asked: %s", truncate(message, 100)),
		Metadata: models.ActivityMetadata{
			"chatId":   chat.ID.String(),
			"category": chat.Category,
		},
	})

	return chat, reply, nil
}

// QuickAsk answers a one-off legal question without creating a chat thread
func (s *ChatService) QuickAsk(ctx context.Context, userID uuid.UUID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	answer, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: QuickAskSystemPrompt},
			{Role: "user", Content: question},
		},
		Temperature: 0.4,
		MaxTokens:   500,
	})
	if err != nil {
		return "", err
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityChatMessage,
		Description: fmt.Sprintf("Quick Ask: %s", truncate(question, 80)),
		Metadata:    models.ActivityMetadata{"quickAsk": true},
	})

	return answer, nil
}

// GetChat returns a chat thread with all of its messages
func (s *ChatService) GetChat(ctx context.Context, userID, id uuid.UUID) (*models.Chat, []*models.ChatMessage, error) {
	chat, err := s.chats.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.chats.ListMessages(ctx, chat.ID)
	if err != nil {
		return nil, nil, err
	}

	return chat, messages, nil
}

// ListChats returns chat summaries ordered by recency
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]*models.ChatSummary, error) {
	return s.chats.ListByUserID(ctx, userID)
}

// DeleteChat removes a chat thread and its messages
func (s *ChatService) DeleteChat(ctx context.Context, userID, id uuid.UUID) error {
	return s.chats.Delete(ctx, userID, id)
}

func chatTitle(message string) string {
	if runes := []rune(message); len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen-3]) + "..."
	}
	return message
}
