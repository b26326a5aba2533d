package repository

import (
	"context"

	"lexai-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BenchmarkRepository handles database operations for the seeded
// market-benchmark reference data.
type BenchmarkRepository struct {
	db *pgxpool.Pool
}

// NewBenchmarkRepository creates a new benchmark repository
func NewBenchmarkRepository(db *pgxpool.Pool) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

// Create inserts a benchmark row, used by the seeding command
func (r *BenchmarkRepository) Create(ctx context.Context, b *models.BenchmarkClause) error {
	query := `
		INSERT INTO benchmark_clauses (
			clause_type, doc_type, industry, value, market_percentile,
			standard_value, is_favorable_to_user, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id`

	return r.db.QueryRow(
		ctx, query,
		b.ClauseType,
		b.DocType,
		b.Industry,
		b.Value,
		b.MarketPercentile,
		b.StandardValue,
		b.IsFavorableToUser,
		b.Note,
	).Scan(&b.ID)
}

// FindMatching retrieves benchmark rows for a clause type, preferring
// rows that also match the document type.
func (r *BenchmarkRepository) FindMatching(ctx context.Context, clauseType, docType string) ([]*models.BenchmarkClause, error) {
	query := `
		SELECT id, clause_type, doc_type, industry, value, market_percentile,
			standard_value, is_favorable_to_user, note
		FROM benchmark_clauses
		WHERE clause_type = $1
		ORDER BY (doc_type = $2) DESC, market_percentile DESC`

	rows, err := r.db.Query(ctx, query, clauseType, docType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var benchmarks []*models.BenchmarkClause
	for rows.Next() {
		b := &models.BenchmarkClause{}
		err := rows.Scan(
			&b.ID,
			&b.ClauseType,
			&b.DocType,
			&b.Industry,
			&b.Value,
			&b.MarketPercentile,
			&b.StandardValue,
			&b.IsFavorableToUser,
			&b.Note,
		)
		if err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, b)
	}

	return benchmarks, rows.Err()
}

// Count returns the number of seeded benchmark rows
func (r *BenchmarkRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM benchmark_clauses`).Scan(&n)
	return n, err
}
