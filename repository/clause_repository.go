package repository

import (
	"context"
	"errors"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClauseRepository handles database operations for clauses
type ClauseRepository struct {
	db *pgxpool.Pool
}

// NewClauseRepository creates a new clause repository
func NewClauseRepository(db *pgxpool.Pool) *ClauseRepository {
	return &ClauseRepository{db: db}
}

const clauseColumns = `id, doc_id, clause_number, clause_type, original_text, risk_level,
	is_illegal, illegal_law, risk_reason, explanation_en, explanation_hi,
	counter_clause, action_advice, benchmark_label, benchmark_note,
	is_blocking, timeline_month, timeline_event, start_char, end_char, created_at`

func scanClause(row pgx.Row) (*models.Clause, error) {
	clause := &models.Clause{}
	err := row.Scan(
		&clause.ID,
		&clause.DocID,
		&clause.ClauseNumber,
		&clause.ClauseType,
		&clause.OriginalText,
		&clause.RiskLevel,
		&clause.IsIllegal,
		&clause.IllegalLaw,
		&clause.RiskReason,
		&clause.ExplanationEn,
		&clause.ExplanationHi,
		&clause.CounterClause,
		&clause.ActionAdvice,
		&clause.BenchmarkLabel,
		&clause.BenchmarkNote,
		&clause.IsBlocking,
		&clause.TimelineMonth,
		&clause.TimelineEvent,
		&clause.StartChar,
		&clause.EndChar,
		&clause.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return clause, nil
}

// ListByDocID retrieves all clauses of a document in clause order
func (r *ClauseRepository) ListByDocID(ctx context.Context, docID uuid.UUID) ([]*models.Clause, error) {
	query := `SELECT ` + clauseColumns + ` FROM clauses WHERE doc_id = $1 ORDER BY clause_number`

	rows, err := r.db.Query(ctx, query, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []*models.Clause
	for rows.Next() {
		clause, err := scanClause(rows)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	return clauses, rows.Err()
}

// CountsByUser returns the total, high-risk and illegal clause counts
// across all of a user's documents.
func (r *ClauseRepository) CountsByUser(ctx context.Context, userID uuid.UUID) (total, highRisk, illegal int, err error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE c.risk_level = 'HIGH'),
			COUNT(*) FILTER (WHERE c.is_illegal)
		FROM clauses c
		JOIN documents d ON d.id = c.doc_id
		WHERE d.user_id = $1`

	err = r.db.QueryRow(ctx, query, userID).Scan(&total, &highRisk, &illegal)
	return total, highRisk, illegal, err
}
