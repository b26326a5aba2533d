package handlers

import (
	"errors"
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/models"
	"lexai-backend/repository"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SavedClauseHandler handles HTTP requests for the clause library
type SavedClauseHandler struct {
	savedClauseService *service.SavedClauseService
}

// NewSavedClauseHandler creates a new saved clause handler
func NewSavedClauseHandler(savedClauseService *service.SavedClauseService) *SavedClauseHandler {
	return &SavedClauseHandler{savedClauseService: savedClauseService}
}

// SaveClauseRequest represents the request body for saving a clause
type SaveClauseRequest struct {
	ClauseType    string   `json:"clauseType"`
	OriginalText  string   `json:"originalText"`
	RiskLevel     string   `json:"riskLevel"`
	IsIllegal     bool     `json:"isIllegal"`
	IllegalLaw    string   `json:"illegalLaw"`
	Explanation   string   `json:"explanation"`
	CounterClause string   `json:"counterClause"`
	ActionAdvice  string   `json:"actionAdvice"`
	DocName       string   `json:"docName"`
	DocType       string   `json:"docType"`
	DocID         string   `json:"docId"`
	Notes         string   `json:"notes"`
	Tags          []string `json:"tags"`
}

// Save handles POST /api/saved-clauses
func (h *SavedClauseHandler) Save(c *gin.Context) {
	var req SaveClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	sc := &models.SavedClause{
		UserID:        middleware.GetUserID(c),
		ClauseType:    req.ClauseType,
		OriginalText:  req.OriginalText,
		RiskLevel:     models.RiskLevel(req.RiskLevel),
		IsIllegal:     req.IsIllegal,
		IllegalLaw:    req.IllegalLaw,
		Explanation:   req.Explanation,
		CounterClause: req.CounterClause,
		ActionAdvice:  req.ActionAdvice,
		DocName:       req.DocName,
		DocType:       req.DocType,
		Notes:         req.Notes,
		Tags:          req.Tags,
	}

	if req.DocID != "" {
		if docID, err := uuid.Parse(req.DocID); err == nil {
			sc.DocID = &docID
		}
	}

	saved, err := h.savedClauseService.Save(c.Request.Context(), sc)
	switch {
	case errors.Is(err, service.ErrClauseFieldsRequired):
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Clause text and type are required")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save clause")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"message": "Clause saved",
		"clause":  saved,
	})
}

// List handles GET /api/saved-clauses
func (h *SavedClauseHandler) List(c *gin.Context) {
	clauses, err := h.savedClauseService.List(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Query("filter"),
		c.Query("risk"),
		c.Query("search"),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load clauses")
		return
	}

	ok(c, http.StatusOK, gin.H{"clauses": clauses})
}

// UpdateNotesRequest represents the request body for a notes update
type UpdateNotesRequest struct {
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

// UpdateNotes handles PATCH /api/saved-clauses/:id
func (h *SavedClauseHandler) UpdateNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid clause ID format")
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err = h.savedClauseService.UpdateNotes(c.Request.Context(), middleware.GetUserID(c), id, req.Notes, req.Tags)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Clause not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update clause")
		return
	}

	ok(c, http.StatusOK, gin.H{"message": "Clause updated"})
}

// Delete handles DELETE /api/saved-clauses/:id
func (h *SavedClauseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid clause ID format")
		return
	}

	err = h.savedClauseService.Delete(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "Clause not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete clause")
		return
	}

	ok(c, http.StatusOK, gin.H{"message": "Clause deleted"})
}
