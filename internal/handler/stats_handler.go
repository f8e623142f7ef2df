package handler

import (
	"github.com/gin-gonic/gin"

	"fraudlens/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Get analysis statistics
// @Description Get aggregate counts for stored analyses: totals by outcome, document kind, and risk level, the average risk score, and the number of live staged exports
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=domain.AnalysisStats} "Aggregate statistics"
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
