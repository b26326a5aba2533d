package repository

import (
	"context"
	"errors"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for analyzed documents
// and their clauses.
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateWithClauses inserts a document and all of its clauses in one
// transaction. Either everything is persisted or nothing is.
func (r *DocumentRepository) CreateWithClauses(ctx context.Context, doc *models.Document, clauses []*models.Clause) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	docQuery := `
		INSERT INTO documents (
			user_id, file_name, doc_type, overall_risk, risk_score,
			illegal_count, sign_verdict, sign_verdict_reason, blocking_clauses,
			parties, key_dates, monthly_obligations, summary_en, summary_hi,
			raw_text, clause_count, high_risk_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at`

	err = tx.QueryRow(
		ctx, docQuery,
		doc.UserID,
		doc.FileName,
		doc.DocType,
		doc.OverallRisk,
		doc.RiskScore,
		doc.IllegalCount,
		doc.SignVerdict,
		doc.SignVerdictReason,
		doc.BlockingClauses,
		doc.Parties,
		doc.KeyDates,
		doc.MonthlyObligations,
		doc.SummaryEn,
		doc.SummaryHi,
		doc.RawText,
		doc.ClauseCount,
		doc.HighRiskCount,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return err
	}

	clauseQuery := `
		INSERT INTO clauses (
			doc_id, clause_number, clause_type, original_text, risk_level,
			is_illegal, illegal_law, risk_reason, explanation_en, explanation_hi,
			counter_clause, action_advice, benchmark_label, benchmark_note,
			is_blocking, timeline_month, timeline_event, start_char, end_char
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING id, created_at`

	for _, clause := range clauses {
		clause.DocID = doc.ID
		err = tx.QueryRow(
			ctx, clauseQuery,
			clause.DocID,
			clause.ClauseNumber,
			clause.ClauseType,
			clause.OriginalText,
			clause.RiskLevel,
			clause.IsIllegal,
			clause.IllegalLaw,
			clause.RiskReason,
			clause.ExplanationEn,
			clause.ExplanationHi,
			clause.CounterClause,
			clause.ActionAdvice,
			clause.BenchmarkLabel,
			clause.BenchmarkNote,
			clause.IsBlocking,
			clause.TimelineMonth,
			clause.TimelineEvent,
			clause.StartChar,
			clause.EndChar,
		).Scan(&clause.ID, &clause.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const documentColumns = `id, user_id, file_name, doc_type, overall_risk, risk_score,
	illegal_count, sign_verdict, sign_verdict_reason, blocking_clauses,
	parties, key_dates, monthly_obligations, summary_en, summary_hi,
	raw_text, clause_count, high_risk_count, created_at`

func scanDocument(row pgx.Row) (*models.Document, error) {
	doc := &models.Document{}
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.DocType,
		&doc.OverallRisk,
		&doc.RiskScore,
		&doc.IllegalCount,
		&doc.SignVerdict,
		&doc.SignVerdictReason,
		&doc.BlockingClauses,
		&doc.Parties,
		&doc.KeyDates,
		&doc.MonthlyObligations,
		&doc.SummaryEn,
		&doc.SummaryHi,
		&doc.RawText,
		&doc.ClauseCount,
		&doc.HighRiskCount,
		&doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID retrieves a document owned by the given user
func (r *DocumentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	return scanDocument(r.db.QueryRow(ctx, query, id, userID))
}

// ListByUserID retrieves all documents for a user, newest first. The raw
// contract text is omitted from list results.
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, user_id, file_name, doc_type, overall_risk, risk_score,
			illegal_count, sign_verdict, sign_verdict_reason, blocking_clauses,
			parties, key_dates, monthly_obligations, summary_en, summary_hi,
			'', clause_count, high_risk_count, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Delete removes a document and its clauses. Saved clauses are denormalized
// copies and are intentionally left untouched.
func (r *DocumentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM clauses WHERE doc_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
