package handlers

import (
	"errors"
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/repository"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles HTTP requests for the legal assistant
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest represents the request body for a chat turn
type SendMessageRequest struct {
	Message  string `json:"message"`
	ChatID   string `json:"chatId"`
	Category string `json:"category"`
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var chatID *uuid.UUID
	if req.ChatID != "" {
		id, err := uuid.Parse(req.ChatID)
		if err != nil {
			fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid chat ID format")
			return
		}
		chatID = &id
	}

	chat, reply, err := h.chatService.SendMessage(c.Request.Context(), middleware.GetUserID(c), chatID, req.Message, req.Category)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, "EMPTY_MESSAGE", "Message is required")
		return
	case errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, "NOT_FOUND", "Chat not found")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "CHAT_FAILED", "Failed to process message")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"chatId":  chat.ID,
		"message": reply,
		"title":   chat.Title,
	})
}

// ListChats handles GET /api/chat
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatService.ListChats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load chats")
		return
	}

	ok(c, http.StatusOK, gin.H{"chats": chats})
}

// GetChat handles GET /api/chat/:id
func (h *ChatHandler) GetChat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid chat ID format")
		return
	}

	chat, messages, err := h.chatService.GetChat(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Chat not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "GET_FAILED", "Failed to load chat")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"chat":     chat,
		"messages": messages,
	})
}

// DeleteChat handles DELETE /api/chat/:id
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid chat ID format")
		return
	}

	err = h.chatService.DeleteChat(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Chat not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete chat")
		return
	}

	ok(c, http.StatusOK, gin.H{"message": "Chat deleted"})
}

// QuickAskRequest represents the request body for a one-off question
type QuickAskRequest struct {
	Question string `json:"question"`
}

// QuickAsk handles POST /api/quick-ask
func (h *ChatHandler) QuickAsk(c *gin.Context) {
	var req QuickAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	answer, err := h.chatService.QuickAsk(c.Request.Context(), middleware.GetUserID(c), req.Question)
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		fail(c, http.StatusBadRequest, "EMPTY_QUESTION", "Question is required")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "ASK_FAILED", "Failed to answer")
		return
	}

	ok(c, http.StatusOK, gin.H{"answer": answer})
}
