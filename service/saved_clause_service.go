package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexai-backend/models"

	"github.com/google/uuid"
)

// ErrClauseFieldsRequired is returned when the clause text or type is missing
var ErrClauseFieldsRequired = errors.New("clause text and type are required")

// SavedClauseStore persists the user's clause library
type SavedClauseStore interface {
	Create(ctx context.Context, sc *models.SavedClause) error
	ListByUserID(ctx context.Context, userID uuid.UUID, clauseType, risk, search string) ([]*models.SavedClause, error)
	UpdateNotes(ctx context.Context, userID, id uuid.UUID, notes string, tags []string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SavedClauseService manages the personal clause library. Entries are
// denormalized copies, so deleting the source document never touches them.
type SavedClauseService struct {
	store      SavedClauseStore
	activities ActivityRecorder
}

// NewSavedClauseService creates a new saved clause service
func NewSavedClauseService(store SavedClauseStore, activities ActivityRecorder) *SavedClauseService {
	return &SavedClauseService{
		store:      store,
		activities: activities,
	}
}

// Save stores a clause in the user's library
func (s *SavedClauseService) Save(ctx context.Context, sc *models.SavedClause) (*models.SavedClause, error) {
	if strings.TrimSpace(sc.OriginalText) == "" || strings.TrimSpace(sc.ClauseType) == "" {
		return nil, ErrClauseFieldsRequired
	}
	if sc.RiskLevel == "" {
		sc.RiskLevel = models.RiskMedium
	}
	if sc.Tags == nil {
		sc.Tags = []string{}
	}

	if err := s.store.Create(ctx, sc); err != nil {
		return nil, err
	}

	docName := sc.DocName
	if docName == "" {
		docName = "document"
	}
	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      sc.UserID,
		Type:        models.ActivityClauseSaved,
		Description: fmt.Sprintf("Saved %s clause from %s", sc.ClauseType, docName),
		Metadata: models.ActivityMetadata{
			"clauseId":   sc.ID.String(),
			"clauseType": sc.ClauseType,
			"riskLevel":  sc.RiskLevel,
		},
	})

	return sc, nil
}

// List returns the user's saved clauses, optionally filtered
func (s *SavedClauseService) List(ctx context.Context, userID uuid.UUID, clauseType, risk, search string) ([]*models.SavedClause, error) {
	return s.store.ListByUserID(ctx, userID, clauseType, risk, search)
}

// UpdateNotes replaces the notes and tags of a saved clause
func (s *SavedClauseService) UpdateNotes(ctx context.Context, userID, id uuid.UUID, notes string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return s.store.UpdateNotes(ctx, userID, id, notes, tags)
}

// Delete removes a clause from the library
func (s *SavedClauseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.Delete(ctx, userID, id)
}
