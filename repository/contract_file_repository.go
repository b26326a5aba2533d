package repository

import (
	"context"
	"errors"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractFileRepository handles database operations for archived uploads
type ContractFileRepository struct {
	db *pgxpool.Pool
}

// NewContractFileRepository creates a new contract file repository
func NewContractFileRepository(db *pgxpool.Pool) *ContractFileRepository {
	return &ContractFileRepository{db: db}
}

// Create records an archived upload
func (r *ContractFileRepository) Create(ctx context.Context, file *models.ContractFile) error {
	query := `
		INSERT INTO contract_files (
			user_id, document_id, filename, mime_type, size, storage_path
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		file.UserID,
		file.DocumentID,
		file.Filename,
		file.MimeType,
		file.Size,
		file.StoragePath,
	).Scan(&file.ID, &file.CreatedAt)

	return err
}

// AttachDocument links an archived upload to the document produced from it
func (r *ContractFileRepository) AttachDocument(ctx context.Context, id, documentID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE contract_files SET document_id = $2 WHERE id = $1`,
		id, documentID)
	return err
}

// GetByDocumentID retrieves the archived upload behind a document
func (r *ContractFileRepository) GetByDocumentID(ctx context.Context, userID, documentID uuid.UUID) (*models.ContractFile, error) {
	file := &models.ContractFile{}
	query := `
		SELECT id, user_id, document_id, filename, mime_type, size, storage_path, created_at
		FROM contract_files
		WHERE document_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, documentID, userID).Scan(
		&file.ID,
		&file.UserID,
		&file.DocumentID,
		&file.Filename,
		&file.MimeType,
		&file.Size,
		&file.StoragePath,
		&file.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}
