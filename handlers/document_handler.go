package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lexai-backend/middleware"
	"lexai-backend/pkg/logger"
	"lexai-backend/repository"
	"lexai-backend/service"
	"lexai-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploads above this size are rejected before any parsing
const maxUploadBytes = 10 << 20

// DocumentHandler handles HTTP requests for document ingestion, analysis
// and retrieval.
type DocumentHandler struct {
	ingestService   *service.IngestService
	analysisService *service.AnalysisService
	archiveService  *service.ArchiveService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(ingestService *service.IngestService, analysisService *service.AnalysisService, archiveService *service.ArchiveService) *DocumentHandler {
	return &DocumentHandler{
		ingestService:   ingestService,
		analysisService: analysisService,
		archiveService:  archiveService,
	}
}

// ParseDocument handles POST /api/parse-document. It accepts either a
// multipart file or pasted text, returns the extracted plain text, and
// archives file uploads for later download.
func (h *DocumentHandler) ParseDocument(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if rawText := strings.TrimSpace(c.PostForm("rawText")); rawText != "" {
		ok(c, http.StatusOK, gin.H{"rawText": rawText})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "NO_INPUT", "Please upload a file or paste text")
		return
	}

	if fileHeader.Size > maxUploadBytes {
		fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 10 MB limit")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !service.AllowedMIMETypes[mimeType] {
		fail(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Unsupported file type. Upload PDF, image, or text file.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, "READ_FAILED", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		fail(c, http.StatusInternalServerError, "READ_FAILED", "Failed to read uploaded file")
		return
	}

	rawText, err := h.ingestService.ExtractText(c.Request.Context(), mimeType, data)
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		fail(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Unsupported file type. Upload PDF, image, or text file.")
		return
	case errors.Is(err, service.ErrUnreadableDocument):
		fail(c, http.StatusUnprocessableEntity, "UNREADABLE", "Could not extract text from this document. It may be empty or corrupted.")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "PARSE_FAILED", "Failed to parse document")
		return
	}

	// Archive the original upload. Extraction already succeeded, so a
	// failed archive write only costs the re-download feature.
	var fileID string
	archived, err := h.archiveService.Store(c.Request.Context(), userID, fileHeader.Filename, mimeType, data)
	if err != nil {
		logger.Warn(c.Request.Context(), "failed to archive upload", "filename", fileHeader.Filename, "error", err)
	} else {
		fileID = archived.ID.String()
	}

	ok(c, http.StatusOK, gin.H{
		"rawText": rawText,
		"fileId":  fileID,
	})
}

// AnalyzeRequest represents the request body for clause analysis
type AnalyzeRequest struct {
	RawText  string `json:"rawText"`
	DocType  string `json:"docType"`
	Language string `json:"language"`
	FileName string `json:"fileName"`
	FileID   string `json:"fileId"`
}

// AnalyzeClauses handles POST /api/analyze-clauses
func (h *DocumentHandler) AnalyzeClauses(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	userID := middleware.GetUserID(c)

	doc, clauses, err := h.analysisService.Analyze(c.Request.Context(), userID, req.RawText, req.DocType, req.Language, req.FileName)
	switch {
	case errors.Is(err, service.ErrTextTooShort):
		fail(c, http.StatusBadRequest, "TEXT_TOO_SHORT", "Document text is too short to analyze")
		return
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_ANALYSIS", "AI returned invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "ANALYSIS_FAILED", "Failed to analyze document")
		return
	}

	if req.FileID != "" {
		if fileID, parseErr := uuid.Parse(req.FileID); parseErr == nil {
			if attachErr := h.archiveService.Attach(c.Request.Context(), fileID, doc.ID); attachErr != nil {
				logger.Warn(c.Request.Context(), "failed to attach archive to document", "fileId", req.FileID, "error", attachErr)
			}
		}
	}

	ok(c, http.StatusOK, gin.H{
		"documentId": doc.ID,
		"document":   doc,
		"clauses":    clauses,
	})
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.analysisService.ListDocuments(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load documents")
		return
	}

	ok(c, http.StatusOK, gin.H{"documents": docs})
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID format")
		return
	}

	doc, clauses, err := h.analysisService.GetDocument(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "GET_FAILED", "Failed to load document")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"document": doc,
		"clauses":  clauses,
	})
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID format")
		return
	}

	err = h.analysisService.DeleteDocument(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete document")
		return
	}

	ok(c, http.StatusOK, gin.H{"message": "Document deleted"})
}

// DownloadFile handles GET /api/documents/:id/file, streaming back the
// archived original upload.
func (h *DocumentHandler) DownloadFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID format")
		return
	}

	file, reader, err := h.archiveService.Open(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "No archived file for this document")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to download file")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Content-Type", file.MimeType)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.Warn(c.Request.Context(), "failed to stream archived file", "documentId", id, "error", err)
	}
}
