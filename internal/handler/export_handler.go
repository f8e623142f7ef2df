package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fraudlens/internal/domain"
	"fraudlens/internal/service"
)

// ExportHandler handles staged export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Stage handles POST /api/v1/analyses/:id/exports
// @Summary Stage an export
// @Description Render an analysis in the requested format, upload it to object storage, and return a time-limited download URL. Optionally email the link.
// @Tags exports
// @Accept json
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Param request body StageExportRequest true "Export format and optional notification email"
// @Success 201 {object} Response{data=StagedExportResponse} "Export staged"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Failure 409 {object} ErrorResponseBody "Analysis has no result data"
// @Failure 500 {object} ErrorResponseBody "Upload to storage failed"
// @Router /analyses/{id}/exports [post]
func (h *ExportHandler) Stage(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	var req struct {
		Format      domain.ExportFormat `json:"format" binding:"required"`
		NotifyEmail string              `json:"notify_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format is required")
		return
	}

	staged, err := h.exportService.Stage(c.Request.Context(), service.StageExportInput{
		AnalysisID:  analysisID,
		Format:      req.Format,
		NotifyEmail: strings.TrimSpace(req.NotifyEmail),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"export":       staged.Export,
		"download_url": staged.DownloadURL,
		"expires_at":   staged.ExpiresAt,
	})
}

// List handles GET /api/v1/analyses/:id/exports
// @Summary List staged exports
// @Description List all staged exports for an analysis, including released ones
// @Tags exports
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=[]domain.AnalysisExport} "List of staged exports"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id}/exports [get]
func (h *ExportHandler) List(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	exports, err := h.exportService.ListByAnalysis(c.Request.Context(), analysisID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, exports)
}
