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

// ErrTextTooShort is returned when the contract text is too small to analyze
var ErrTextTooShort = errors.New("document text is too short to analyze")

const minAnalyzableChars = 50

// DocumentStore persists analyzed documents and their clauses
type DocumentStore interface {
	CreateWithClauses(ctx context.Context, doc *models.Document, clauses []*models.Clause) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Document, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ClauseStore reads back the clauses of a document
type ClauseStore interface {
	ListByDocID(ctx context.Context, docID uuid.UUID) ([]*models.Clause, error)
}

// AnalysisService runs the clause-by-clause contract analysis and owns the
// resulting documents.
type AnalysisService struct {
	completer  Completer
	documents  DocumentStore
	clauses    ClauseStore
	activities ActivityRecorder
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(completer Completer, documents DocumentStore, clauses ClauseStore, activities ActivityRecorder) *AnalysisService {
	return &AnalysisService{
		completer:  completer,
		documents:  documents,
		clauses:    clauses,
		activities: activities,
	}
}

// Analyze runs the full analysis on raw contract text and persists the
// result. The document and clauses are written in one transaction so a
// failed insert never leaves a document without its clauses.
func (s *AnalysisService) Analyze(ctx context.Context, userID uuid.UUID, rawText, docType, language, fileName string) (*models.Document, []*models.Clause, error) {
	if len(strings.TrimSpace(rawText)) < minAnalyzableChars {
		return nil, nil, ErrTextTooShort
	}
	if docType == "" {
		docType = string(models.DocTypeOther)
	}
	if language == "" {
		language = "en"
	}
	if fileName == "" {
		fileName = "Untitled Document"
	}

	prompt := MasterAnalysisPrompt(rawText, docType, language)

	responseText, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.15,
		MaxTokens:   6000,
		JSONMode:    true,
	})
	if err != nil {
		return nil, nil, err
	}

	doc, clauses, err := NormalizeAnalysis(responseText, docType, fileName, rawText)
	if err != nil {
		return nil, nil, err
	}

	doc.UserID = userID
	if err := s.documents.CreateWithClauses(ctx, doc, clauses); err != nil {
		return nil, nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityDocumentAnalyzed,
		Description: fmt.Sprintf("Analyzed %q, %d clauses, risk %s", fileName, doc.ClauseCount, doc.OverallRisk),
		Metadata: models.ActivityMetadata{
			"docId":     doc.ID.String(),
			"fileName":  fileName,
			"riskScore": doc.RiskScore,
		},
	})

	return doc, clauses, nil
}

// GetDocument returns a document with its clauses
func (s *AnalysisService) GetDocument(ctx context.Context, userID, id uuid.UUID) (*models.Document, []*models.Clause, error) {
	doc, err := s.documents.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	clauses, err := s.clauses.ListByDocID(ctx, doc.ID)
	if err != nil {
		return nil, nil, err
	}

	return doc, clauses, nil
}

// ListDocuments returns all documents of a user, newest first
func (s *AnalysisService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	return s.documents.ListByUserID(ctx, userID)
}

// DeleteDocument removes a document and its clauses. Saved clauses keep
// their denormalized copy.
func (s *AnalysisService) DeleteDocument(ctx context.Context, userID, id uuid.UUID) error {
	return s.documents.Delete(ctx, userID, id)
}
