package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"lexai-backend/llm"
	"lexai-backend/models"
	"lexai-backend/repository"

	"github.com/google/uuid"
)

type fakeChatStore struct {
	chats    map[uuid.UUID]*models.Chat
	messages map[uuid.UUID][]*models.ChatMessage
	nextID   int64
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		chats:    map[uuid.UUID]*models.Chat{},
		messages: map[uuid.UUID][]*models.ChatMessage{},
	}
}

func (f *fakeChatStore) Create(ctx context.Context, chat *models.Chat) error {
	chat.ID = uuid.New()
	f.chats[chat.ID] = chat
	return nil
}

func (f *fakeChatStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Chat, error) {
	chat, ok := f.chats[id]
	if !ok || chat.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return chat, nil
}

func (f *fakeChatStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ChatSummary, error) {
	var out []*models.ChatSummary
	for _, chat := range f.chats {
		if chat.UserID == userID {
			out = append(out, &models.ChatSummary{ID: chat.ID, Title: chat.Title})
		}
	}
	return out, nil
}

func (f *fakeChatStore) AddMessage(ctx context.Context, msg *models.ChatMessage) error {
	f.nextID++
	msg.ID = f.nextID
	f.messages[msg.ChatID] = append(f.messages[msg.ChatID], msg)
	return nil
}

func (f *fakeChatStore) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*models.ChatMessage, error) {
	return f.messages[chatID], nil
}

func (f *fakeChatStore) LastMessages(ctx context.Context, chatID uuid.UUID, n int) ([]*models.ChatMessage, error) {
	msgs := f.messages[chatID]
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return msgs, nil
}

func (f *fakeChatStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	chat, ok := f.chats[id]
	if !ok || chat.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.chats, id)
	delete(f.messages, id)
	return nil
}

type fakeCompleter struct {
	reply       string
	err         error
	lastRequest llm.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.lastRequest = req
	return f.reply, f.err
}

func TestSendMessageCreatesChat(t *testing.T) {
	store := newFakeChatStore()
	completer := &fakeCompleter{reply: "Under Indian law, a security deposit..."}
	svc := NewChatService(completer, store, nil)
	userID := uuid.New()

	chat, reply, err := svc.SendMessage(context.Background(), userID, nil, "Is a 10 month deposit legal?", "")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply != completer.reply {
		t.Errorf("Unexpected reply: %q", reply)
	}
	if chat.Title != "Is a 10 month deposit legal?" {
		t.Errorf("Expected title from first message, got %q", chat.Title)
	}
	if chat.Category != "general" {
		t.Errorf("Expected default category, got %q", chat.Category)
	}

	msgs := store.messages[chat.ID]
	if len(msgs) != 2 {
		t.Fatalf("Expected user + assistant messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Error("Unexpected message roles")
	}

	// The model sees the system prompt followed by the history
	if completer.lastRequest.Messages[0].Role != "system" {
		t.Error("Expected system prompt first")
	}
	if completer.lastRequest.JSONMode {
		t.Error("Chat replies are plain text, not JSON mode")
	}
}

func TestSendMessageContinuesChat(t *testing.T) {
	store := newFakeChatStore()
	completer := &fakeCompleter{reply: "reply"}
	svc := NewChatService(completer, store, nil)
	userID := uuid.New()

	chat, _, err := svc.SendMessage(context.Background(), userID, nil, "first question", "tenancy")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	same, _, err := svc.SendMessage(context.Background(), userID, &chat.ID, "follow-up", "")
	if err != nil {
		t.Fatalf("Follow-up failed: %v", err)
	}
	if same.ID != chat.ID {
		t.Error("Expected the existing chat to be reused")
	}
	if len(store.messages[chat.ID]) != 4 {
		t.Errorf("Expected 4 messages, got %d", len(store.messages[chat.ID]))
	}
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc := NewChatService(&fakeCompleter{}, newFakeChatStore(), nil)

	_, _, err := svc.SendMessage(context.Background(), uuid.New(), nil, "   ", "")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendMessageUnknownChat(t *testing.T) {
	svc := NewChatService(&fakeCompleter{reply: "r"}, newFakeChatStore(), nil)

	missing := uuid.New()
	_, _, err := svc.SendMessage(context.Background(), uuid.New(), &missing, "hello", "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestQuickAsk(t *testing.T) {
	completer := &fakeCompleter{reply: "Yes, notice periods over 90 days are unusual."}
	svc := NewChatService(completer, newFakeChatStore(), nil)

	answer, err := svc.QuickAsk(context.Background(), uuid.New(), "Is a 180 day notice period normal?")
	if err != nil {
		t.Fatalf("QuickAsk failed: %v", err)
	}
	if answer != completer.reply {
		t.Errorf("Unexpected answer: %q", answer)
	}

	if completer.lastRequest.Messages[0].Content != QuickAskSystemPrompt {
		t.Error("Expected the quick-ask system prompt")
	}

	if _, err := svc.QuickAsk(context.Background(), uuid.New(), ""); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("Expected ErrEmptyQuestion, got %v", err)
	}
}

func TestChatTitle(t *testing.T) {
	if got := chatTitle("short question"); got != "short question" {
		t.Errorf("Short titles must pass through, got %q", got)
	}

	long := strings.Repeat("a", 80)
	got := chatTitle(long)
	if len(got) != 60 {
		t.Errorf("Expected 60-char title, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}

	hindi := strings.Repeat("क", 80)
	got = chatTitle(hindi)
	if !utf8.ValidString(got) {
		t.Errorf("Truncated Hindi title is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 60 {
		t.Errorf("Expected 60-rune title, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
}
