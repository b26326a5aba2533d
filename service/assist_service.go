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
	// ErrBothVersionsRequired is returned when a comparison is missing a side
	ErrBothVersionsRequired = errors.New("both contract versions are required")

	// ErrBenchmarkInputRequired is returned when the clause type or value is missing
	ErrBenchmarkInputRequired = errors.New("clause type and value are required")
)

// BenchmarkStore reads the seeded market-benchmark rows
type BenchmarkStore interface {
	FindMatching(ctx context.Context, clauseType, docType string) ([]*models.BenchmarkClause, error)
}

// AssistService covers the single-clause helpers: contract comparison,
// counter-clause drafting and market benchmarking.
type AssistService struct {
	completer  Completer
	benchmarks BenchmarkStore
	activities ActivityRecorder
}

// NewAssistService creates a new assist service
func NewAssistService(completer Completer, benchmarks BenchmarkStore, activities ActivityRecorder) *AssistService {
	return &AssistService{
		completer:  completer,
		benchmarks: benchmarks,
		activities: activities,
	}
}

// Compare diffs two versions of a contract from the user's perspective
func (s *AssistService) Compare(ctx context.Context, userID uuid.UUID, oldText, newText, userRole string) (map[string]interface{}, error) {
	if strings.TrimSpace(oldText) == "" || strings.TrimSpace(newText) == "" {
		return nil, ErrBothVersionsRequired
	}
	if userRole == "" {
		userRole = "tenant"
	}

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: CompareContractsPrompt(oldText, newText, userRole)}},
		Temperature: 0.2,
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

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityComparisonDone,
		Description: "Compared two contract versions",
	})

	return result, nil
}

// CounterClause drafts a balanced alternative for a problematic clause
func (s *AssistService) CounterClause(ctx context.Context, userID uuid.UUID, clauseText, clauseType, docType string) (map[string]interface{}, error) {
	if strings.TrimSpace(clauseText) == "" {
		return nil, ErrClauseRequired
	}
	if clauseType == "" {
		clauseType = string(models.ClauseOther)
	}
	if docType == "" {
		docType = string(models.DocTypeOther)
	}

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: CounterClausePrompt(clauseText, clauseType, docType)}},
		Temperature: 0.3,
		MaxTokens:   600,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeJSONObject(responseText)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityCounterClause,
		Description: fmt.Sprintf("Drafted counter-clause for %s clause", clauseType),
	})

	return result, nil
}

// Benchmark compares a clause against Indian market standards. Seeded
// benchmark rows, when present, are fed to the model as real market data
// and returned alongside its verdict.
func (s *AssistService) Benchmark(ctx context.Context, userID uuid.UUID, clauseType, value, docType string) (map[string]interface{}, error) {
	if strings.TrimSpace(clauseType) == "" || strings.TrimSpace(value) == "" {
		return nil, ErrBenchmarkInputRequired
	}
	if docType == "" {
		docType = string(models.DocTypeOther)
	}

	rows, err := s.benchmarks.FindMatching(ctx, clauseType, docType)
	if err != nil {
		return nil, err
	}

	prompt := BenchmarkPrompt(clauseType, value, docType) + benchmarkContext(rows)

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.2,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeJSONObject(responseText)
	if err != nil {
		return nil, err
	}
	result["dbBenchmarks"] = rows

	return result, nil
}

func benchmarkContext(rows []*models.BenchmarkClause) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nREAL MARKET DATA FROM DATABASE:\n")
	for i, b := range rows {
		favorable := "unfavorable"
		if b.IsFavorableToUser {
			favorable = "favorable"
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s: %d%% of market (%s to user). %s", b.Value, b.MarketPercentile, favorable, b.Note)
	}
	return sb.String()
}
