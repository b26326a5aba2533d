package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexai-backend/llm"

	"github.com/google/uuid"
)

type fakeStreamCompleter struct {
	completeText string
	completeErr  error
	chunks       []string
	lastRequest  llm.CompletionRequest
}

func (f *fakeStreamCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.lastRequest = req
	return f.completeText, f.completeErr
}

func (f *fakeStreamCompleter) Stream(ctx context.Context, req llm.CompletionRequest, fn func(chunk string) error) error {
	f.lastRequest = req
	for _, chunk := range f.chunks {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

func TestStreamReplyRequiresClause(t *testing.T) {
	svc := NewNegotiationService(&fakeStreamCompleter{}, nil)

	err := svc.StreamReply(context.Background(), "  ", "landlord", 1, nil, func(string) error { return nil })
	if !errors.Is(err, ErrClauseRequired) {
		t.Errorf("Expected ErrClauseRequired, got %v", err)
	}
}

func TestStreamReplyDeliversChunks(t *testing.T) {
	completer := &fakeStreamCompleter{chunks: []string{"The deposit ", "is non-negotiable."}}
	svc := NewNegotiationService(completer, nil)

	var got []string
	err := svc.StreamReply(context.Background(), "Deposit of 10 months rent", "", 1,
		[]NegotiationTurn{{Role: "user", Content: "10 months is too much"}},
		func(chunk string) error {
			got = append(got, chunk)
			return nil
		})
	if err != nil {
		t.Fatalf("StreamReply failed: %v", err)
	}

	if strings.Join(got, "") != "The deposit is non-negotiable." {
		t.Errorf("Unexpected reply: %q", strings.Join(got, ""))
	}

	prompt := completer.lastRequest.Messages[0].Content
	if !strings.Contains(prompt, "Deposit of 10 months rent") {
		t.Error("Expected clause text in prompt")
	}
	if !strings.Contains(prompt, "10 months is too much") {
		t.Error("Expected latest user message in prompt")
	}
	// Empty persona falls back to the landlord roleplay
	if !strings.Contains(strings.ToLower(prompt), "landlord") {
		t.Error("Expected landlord persona fallback")
	}
	if completer.lastRequest.JSONMode {
		t.Error("Roleplay replies are plain text, not JSON mode")
	}
}

func TestDebriefGating(t *testing.T) {
	completer := &fakeStreamCompleter{completeText: `{"score": 7}`}
	svc := NewNegotiationService(completer, nil)
	userID := uuid.New()
	turns := []NegotiationTurn{{Role: "user", Content: "lower it"}}

	if _, err := svc.Debrief(context.Background(), userID, "", "landlord", 3, turns); !errors.Is(err, ErrClauseRequired) {
		t.Errorf("Expected ErrClauseRequired, got %v", err)
	}

	for _, count := range []int{0, 1, 2} {
		if _, err := svc.Debrief(context.Background(), userID, "clause", "landlord", count, turns); !errors.Is(err, ErrDebriefTooEarly) {
			t.Errorf("exchangeCount=%d: expected ErrDebriefTooEarly, got %v", count, err)
		}
	}

	debrief, err := svc.Debrief(context.Background(), userID, "clause", "landlord", 3, turns)
	if err != nil {
		t.Fatalf("Debrief failed: %v", err)
	}
	if debrief["score"] != float64(7) {
		t.Errorf("Unexpected debrief payload: %v", debrief)
	}
	if !completer.lastRequest.JSONMode {
		t.Error("Debrief must request JSON mode")
	}
}

func TestDebriefInvalidJSON(t *testing.T) {
	completer := &fakeStreamCompleter{completeText: "I had a great time!"}
	svc := NewNegotiationService(completer, nil)

	_, err := svc.Debrief(context.Background(), uuid.New(), "clause", "landlord", 3, nil)
	if !errors.Is(err, ErrInvalidAnalysis) {
		t.Errorf("Expected ErrInvalidAnalysis, got %v", err)
	}
}

func TestDebriefUsesSessionPersona(t *testing.T) {
	completer := &fakeStreamCompleter{completeText: `{"score": 6}`}
	svc := NewNegotiationService(completer, nil)

	turns := []NegotiationTurn{
		{Role: "user", Content: "90 days is excessive"},
		{Role: "assistant", Content: "Company policy requires 90 days"},
	}

	if _, err := svc.Debrief(context.Background(), uuid.New(), "Notice period of 90 days", "employer", 3, turns); err != nil {
		t.Fatalf("Debrief failed: %v", err)
	}

	prompt := completer.lastRequest.Messages[0].Content
	if !strings.Contains(prompt, "EMPLOYER: Company policy requires 90 days") {
		t.Errorf("Expected employer-labeled history in prompt, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "LANDLORD:") {
		t.Error("History must not fall back to the landlord label for employer sessions")
	}

	if _, err := svc.Debrief(context.Background(), uuid.New(), "clause", "", 3, turns); err != nil {
		t.Fatalf("Debrief failed: %v", err)
	}
	if !strings.Contains(completer.lastRequest.Messages[0].Content, "LANDLORD:") {
		t.Error("Empty persona must fall back to the landlord label")
	}
}

func TestConversationHistory(t *testing.T) {
	turns := []NegotiationTurn{
		{Role: "user", Content: "Can we reduce the deposit?"},
		{Role: "assistant", Content: "No, that is standard."},
	}

	history := conversationHistory(turns, "employer")
	want := "USER: Can we reduce the deposit?\nEMPLOYER: No, that is standard."
	if history != want {
		t.Errorf("Unexpected history:\n%q\nwant\n%q", history, want)
	}

	if conversationHistory(nil, "landlord") != "" {
		t.Error("Expected empty history for no turns")
	}
}
