package handlers

import (
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler handles the dashboard overview endpoint
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview handles GET /api/stats
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to load stats")
		return
	}

	ok(c, http.StatusOK, overview)
}
