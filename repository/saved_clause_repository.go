package repository

import (
	"context"
	"errors"
	"fmt"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavedClauseRepository handles database operations for the saved-clause library
type SavedClauseRepository struct {
	db *pgxpool.Pool
}

// NewSavedClauseRepository creates a new saved clause repository
func NewSavedClauseRepository(db *pgxpool.Pool) *SavedClauseRepository {
	return &SavedClauseRepository{db: db}
}

// Create creates a new saved clause
func (r *SavedClauseRepository) Create(ctx context.Context, sc *models.SavedClause) error {
	query := `
		INSERT INTO saved_clauses (
			user_id, doc_id, clause_type, original_text, risk_level,
			is_illegal, illegal_law, explanation, counter_clause, action_advice,
			doc_name, doc_type, notes, tags
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		sc.UserID,
		sc.DocID,
		sc.ClauseType,
		sc.OriginalText,
		sc.RiskLevel,
		sc.IsIllegal,
		sc.IllegalLaw,
		sc.Explanation,
		sc.CounterClause,
		sc.ActionAdvice,
		sc.DocName,
		sc.DocType,
		sc.Notes,
		sc.Tags,
	).Scan(&sc.ID, &sc.CreatedAt)

	return err
}

// ListByUserID retrieves saved clauses for a user, newest first. The
// clause-type, risk and free-text filters are all optional.
func (r *SavedClauseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, clauseType, risk, search string) ([]*models.SavedClause, error) {
	query := `
		SELECT id, user_id, doc_id, clause_type, original_text, risk_level,
			is_illegal, illegal_law, explanation, counter_clause, action_advice,
			doc_name, doc_type, notes, tags, created_at
		FROM saved_clauses
		WHERE user_id = $1`

	args := []interface{}{userID}
	argIndex := 2

	if clauseType != "" && clauseType != "all" {
		query += fmt.Sprintf(" AND clause_type = $%d", argIndex)
		args = append(args, clauseType)
		argIndex++
	}
	if risk != "" && risk != "all" {
		query += fmt.Sprintf(" AND risk_level = $%d", argIndex)
		args = append(args, risk)
		argIndex++
	}
	if search != "" {
		query += fmt.Sprintf(` AND (original_text ILIKE $%d OR explanation ILIKE $%d OR notes ILIKE $%d OR EXISTS (
			SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE $%d
		))`, argIndex, argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []*models.SavedClause
	for rows.Next() {
		sc := &models.SavedClause{}
		err := rows.Scan(
			&sc.ID,
			&sc.UserID,
			&sc.DocID,
			&sc.ClauseType,
			&sc.OriginalText,
			&sc.RiskLevel,
			&sc.IsIllegal,
			&sc.IllegalLaw,
			&sc.Explanation,
			&sc.CounterClause,
			&sc.ActionAdvice,
			&sc.DocName,
			&sc.DocType,
			&sc.Notes,
			&sc.Tags,
			&sc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, sc)
	}

	return clauses, rows.Err()
}

// UpdateNotes replaces the notes and tags of a saved clause
func (r *SavedClauseRepository) UpdateNotes(ctx context.Context, userID, id uuid.UUID, notes string, tags []string) error {
	query := `
		UPDATE saved_clauses SET
			notes = $3,
			tags = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id`

	var returned uuid.UUID
	err := r.db.QueryRow(ctx, query, id, userID, notes, tags).Scan(&returned)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// CountByUser returns the number of clauses in the user's library
func (r *SavedClauseRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_clauses WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// Delete removes a saved clause owned by the given user
func (r *SavedClauseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_clauses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
