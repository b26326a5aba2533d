package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

// NegotiationHandler handles the practice-negotiation roleplay endpoint
type NegotiationHandler struct {
	negotiationService *service.NegotiationService
}

// NewNegotiationHandler creates a new negotiation handler
func NewNegotiationHandler(negotiationService *service.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{negotiationService: negotiationService}
}

// NegotiationRequest represents the request body for a negotiation turn
type NegotiationRequest struct {
	Messages       []service.NegotiationTurn `json:"messages"`
	ClauseText     string                    `json:"clauseText"`
	Persona        string                    `json:"persona"`
	ExchangeCount  int                       `json:"exchangeCount"`
	RequestDebrief bool                      `json:"requestDebrief"`
}

// Negotiate handles POST /api/negotiation-chat. Roleplay replies stream as
// server-sent events, a debrief request returns plain JSON instead.
func (h *NegotiationHandler) Negotiate(c *gin.Context) {
	var req NegotiationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if req.RequestDebrief {
		h.debrief(c, req)
		return
	}

	if req.ClauseText == "" {
		fail(c, http.StatusBadRequest, "MISSING_CLAUSE", "Clause text is required")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)

	err := h.negotiationService.StreamReply(c.Request.Context(), req.ClauseText, req.Persona, req.ExchangeCount, req.Messages, func(chunk string) error {
		payload, err := json.Marshal(gin.H{"content": chunk})
		if err != nil {
			return err
		}
		if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	if err != nil {
		c.Writer.WriteString("data: {\"error\": \"stream interrupted\"}\n\n")
	}

	c.Writer.WriteString("data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

func (h *NegotiationHandler) debrief(c *gin.Context, req NegotiationRequest) {
	debrief, err := h.negotiationService.Debrief(c.Request.Context(), middleware.GetUserID(c), req.ClauseText, req.Persona, req.ExchangeCount, req.Messages)
	switch {
	case errors.Is(err, service.ErrClauseRequired):
		fail(c, http.StatusBadRequest, "MISSING_CLAUSE", "Clause text is required")
		return
	case errors.Is(err, service.ErrDebriefTooEarly):
		fail(c, http.StatusBadRequest, "DEBRIEF_TOO_EARLY", "Complete all 3 exchanges before requesting a debrief")
		return
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_RESPONSE", "AI returned invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "DEBRIEF_FAILED", "Failed to process negotiation")
		return
	}

	ok(c, http.StatusOK, gin.H{"debrief": debrief})
}
