package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"lexai-backend/llm"
	"lexai-backend/models"

	"github.com/google/uuid"
)

// ErrEmptyLetter is returned when the model produced no usable notice text
var ErrEmptyLetter = errors.New("model returned an empty legal notice")

// DisputeService drafts formal legal notices under Section 80 CPC
type DisputeService struct {
	completer  Completer
	activities ActivityRecorder
}

// NewDisputeService creates a new dispute service
func NewDisputeService(completer Completer, activities ActivityRecorder) *DisputeService {
	return &DisputeService{
		completer:  completer,
		activities: activities,
	}
}

// GenerateNotice drafts a legal notice from the dispute details. Field
// validation happens at the handler, details arriving here are complete.
func (s *DisputeService) GenerateNotice(ctx context.Context, userID uuid.UUID, details DisputeDetails) (map[string]interface{}, error) {
	noticeRef := newNoticeRef()
	prompt := DisputeLetterPrompt(details, noticeRef, time.Now())

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   4000,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeJSONObject(responseText)
	if err != nil {
		return nil, err
	}

	letter, _ := result["letter"].(string)
	if letter == "" {
		return nil, ErrEmptyLetter
	}
	if _, ok := result["notice_ref"].(string); !ok {
		result["notice_ref"] = noticeRef
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityDisputeGenerated,
		Description: fmt.Sprintf("Generated legal notice for %q regarding %s", details.ReceiverName, details.AgreementType),
	})

	return result, nil
}

// newNoticeRef builds a reference like LN/2026/4821
func newNoticeRef() string {
	return fmt.Sprintf("LN/%d/%d", time.Now().Year(), 1000+rand.Intn(9000))
}
