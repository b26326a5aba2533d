package service

import (
	"bytes"
	"context"
	"io"

	"lexai-backend/models"
	"lexai-backend/pkg/logger"
	"lexai-backend/storage"

	"github.com/google/uuid"
)

// ContractFileStore persists archive records for uploaded contracts
type ContractFileStore interface {
	Create(ctx context.Context, file *models.ContractFile) error
	AttachDocument(ctx context.Context, id, documentID uuid.UUID) error
	GetByDocumentID(ctx context.Context, userID, documentID uuid.UUID) (*models.ContractFile, error)
}

// ArchiveService keeps the original uploads behind analyses so users can
// re-download exactly what they submitted.
type ArchiveService struct {
	backend storage.Storage
	files   ContractFileStore
}

// NewArchiveService creates a new archive service
func NewArchiveService(backend storage.Storage, files ContractFileStore) *ArchiveService {
	return &ArchiveService{backend: backend, files: files}
}

// Store archives an uploaded contract and returns its record
func (s *ArchiveService) Store(ctx context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (*models.ContractFile, error) {
	file := &models.ContractFile{
		UserID:   userID,
		Filename: filename,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}

	fileID := uuid.New()
	file.StoragePath = storage.ObjectKey(userID, fileID, filename)

	if err := s.backend.Upload(ctx, file.StoragePath, mimeType, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	if err := s.files.Create(ctx, file); err != nil {
		// Orphaned objects are cheaper than lost records, still try to clean up
		if delErr := s.backend.Delete(ctx, file.StoragePath); delErr != nil {
			logger.Warn(ctx, "failed to clean up orphaned archive object", "key", file.StoragePath, "error", delErr)
		}
		return nil, err
	}

	return file, nil
}

// Attach links an archived upload to the document produced from it
func (s *ArchiveService) Attach(ctx context.Context, fileID, documentID uuid.UUID) error {
	return s.files.AttachDocument(ctx, fileID, documentID)
}

// Open returns the archived upload behind a document for streaming back
// to the user.
func (s *ArchiveService) Open(ctx context.Context, userID, documentID uuid.UUID) (*models.ContractFile, io.ReadCloser, error) {
	file, err := s.files.GetByDocumentID(ctx, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.backend.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	return file, reader, nil
}
