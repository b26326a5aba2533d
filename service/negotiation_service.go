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
	// ErrClauseRequired is returned when no clause text was provided
	ErrClauseRequired = errors.New("clause text is required")

	// ErrDebriefTooEarly is returned when a debrief is requested before the
	// negotiation has run its three exchanges.
	ErrDebriefTooEarly = errors.New("debrief requires at least 3 exchanges")
)

const minDebriefExchanges = 3

// NegotiationTurn is one prior exchange in the roleplay session
type NegotiationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NegotiationService runs the practice-negotiation roleplay. Replies stream
// token by token, the debrief is a single JSON completion.
type NegotiationService struct {
	completer  StreamCompleter
	activities ActivityRecorder
}

// NewNegotiationService creates a new negotiation service
func NewNegotiationService(completer StreamCompleter, activities ActivityRecorder) *NegotiationService {
	return &NegotiationService{
		completer:  completer,
		activities: activities,
	}
}

// StreamReply streams the persona's next in-character response. fn receives
// each content chunk as it arrives.
func (s *NegotiationService) StreamReply(ctx context.Context, clauseText, persona string, exchangeCount int, turns []NegotiationTurn, fn func(chunk string) error) error {
	if strings.TrimSpace(clauseText) == "" {
		return ErrClauseRequired
	}
	if persona == "" {
		persona = "landlord"
	}
	if exchangeCount < 1 {
		exchangeCount = 1
	}

	userMessage := ""
	if len(turns) > 0 {
		userMessage = turns[len(turns)-1].Content
	}

	prompt := NegotiationPrompt(clauseText, persona, exchangeCount, userMessage, conversationHistory(turns, persona))

	return s.completer.Stream(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.75,
		MaxTokens:   300,
	}, fn)
}

// Debrief scores a finished negotiation session. It refuses to run before
// the persona has been pushed through all three exchanges.
func (s *NegotiationService) Debrief(ctx context.Context, userID uuid.UUID, clauseText, persona string, exchangeCount int, turns []NegotiationTurn) (map[string]interface{}, error) {
	if strings.TrimSpace(clauseText) == "" {
		return nil, ErrClauseRequired
	}
	if persona == "" {
		persona = "landlord"
	}
	if exchangeCount < minDebriefExchanges {
		return nil, ErrDebriefTooEarly
	}

	prompt := NegotiationDebriefPrompt(conversationHistory(turns, persona), clauseText)

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	debrief, err := decodeJSONObject(responseText)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityNegotiationDone,
		Description: fmt.Sprintf("Completed negotiation practice, %d exchanges", exchangeCount),
		Metadata:    models.ActivityMetadata{"exchanges": exchangeCount},
	})

	return debrief, nil
}

func conversationHistory(turns []NegotiationTurn, persona string) string {
	var sb strings.Builder
	for i, t := range turns {
		speaker := strings.ToUpper(persona)
		if t.Role == "user" {
			speaker = "USER"
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}
