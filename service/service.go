package service

import (
	"context"

	"lexai-backend/llm"
	"lexai-backend/models"
	"lexai-backend/pkg/logger"
)

// Completer performs blocking chat completions
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// StreamCompleter performs streaming chat completions
type StreamCompleter interface {
	Completer
	Stream(ctx context.Context, req llm.CompletionRequest, fn func(chunk string) error) error
}

// ActivityRecorder appends entries to the per-user activity log
type ActivityRecorder interface {
	Create(ctx context.Context, activity *models.Activity) error
}

// recordActivity logs an activity entry. Failures are logged and swallowed,
// the activity trail is never allowed to fail a user-facing operation.
func recordActivity(ctx context.Context, recorder ActivityRecorder, activity *models.Activity) {
	if recorder == nil {
		return
	}
	if err := recorder.Create(ctx, activity); err != nil {
		logger.Warn(ctx, "failed to record activity", "type", activity.Type, "error", err)
	}
}

// truncate cuts on rune boundaries so Hindi text never ends mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
