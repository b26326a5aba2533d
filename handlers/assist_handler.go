package handlers

import (
	"errors"
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

// AssistHandler handles the single-clause helper endpoints
type AssistHandler struct {
	assistService *service.AssistService
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(assistService *service.AssistService) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

// CompareRequest represents the request body for a contract comparison
type CompareRequest struct {
	OldText  string `json:"oldText"`
	NewText  string `json:"newText"`
	UserRole string `json:"userRole"`
}

// Compare handles POST /api/compare-contracts
func (h *AssistHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.assistService.Compare(c.Request.Context(), middleware.GetUserID(c), req.OldText, req.NewText, req.UserRole)
	switch {
	case errors.Is(err, service.ErrBothVersionsRequired):
		fail(c, http.StatusBadRequest, "MISSING_VERSIONS", "Both contract versions are required")
		return
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_RESPONSE", "AI returned invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "COMPARE_FAILED", "Failed to compare contracts")
		return
	}

	ok(c, http.StatusOK, result)
}

// CounterClauseRequest represents the request body for counter-clause drafting
type CounterClauseRequest struct {
	ClauseText string `json:"clauseText"`
	ClauseType string `json:"clauseType"`
	DocType    string `json:"docType"`
}

// CounterClause handles POST /api/counter-clause
func (h *AssistHandler) CounterClause(c *gin.Context) {
	var req CounterClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.assistService.CounterClause(c.Request.Context(), middleware.GetUserID(c), req.ClauseText, req.ClauseType, req.DocType)
	switch {
	case errors.Is(err, service.ErrClauseRequired):
		fail(c, http.StatusBadRequest, "MISSING_CLAUSE", "Clause text is required")
		return
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_RESPONSE", "AI returned invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "DRAFT_FAILED", "Failed to draft counter-clause")
		return
	}

	ok(c, http.StatusOK, result)
}

// BenchmarkRequest represents the request body for a market benchmark
type BenchmarkRequest struct {
	ClauseType string `json:"clauseType"`
	Value      string `json:"value"`
	DocType    string `json:"docType"`
}

// Benchmark handles POST /api/benchmark-clause
func (h *AssistHandler) Benchmark(c *gin.Context) {
	var req BenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.assistService.Benchmark(c.Request.Context(), middleware.GetUserID(c), req.ClauseType, req.Value, req.DocType)
	switch {
	case errors.Is(err, service.ErrBenchmarkInputRequired):
		fail(c, http.StatusBadRequest, "MISSING_INPUT", "Clause type and value are required")
		return
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_RESPONSE", "AI returned invalid JSON")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "BENCHMARK_FAILED", "Failed to benchmark clause")
		return
	}

	ok(c, http.StatusOK, result)
}
