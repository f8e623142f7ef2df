package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fraudlens/internal/domain"
	"fraudlens/internal/service"
)

// AnalysisHandler handles analysis ingest and read endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	exportService   service.ExportService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, exportService service.ExportService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, exportService: exportService}
}

// Ingest handles POST /api/v1/analyses
// @Summary Ingest an analysis payload
// @Description Normalize a raw classifier payload (or a transport error) into a stored analysis record and return its view
// @Tags analyses
// @Accept json
// @Produce json
// @Param request body IngestAnalysisRequest true "Raw payload details"
// @Success 201 {object} Response{data=domain.AnalysisView} "Analysis recorded"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /analyses [post]
func (h *AnalysisHandler) Ingest(c *gin.Context) {
	var req struct {
		DocumentKind   domain.DocumentKind `json:"document_kind" binding:"required"`
		SourceFile     string              `json:"source_file"`
		Payload        json.RawMessage     `json:"payload"`
		TransportError json.RawMessage     `json:"transport_error"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_kind is required")
		return
	}

	record, err := h.analysisService.Ingest(c.Request.Context(), service.IngestAnalysisInput{
		DocumentKind:   req.DocumentKind,
		SourceFile:     req.SourceFile,
		Payload:        req.Payload,
		TransportError: req.TransportError,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, service.BuildAnalysisView(record))
}

// List handles GET /api/v1/analyses
// @Summary List analyses
// @Description List stored analyses with optional document kind, status, and risk level filters
// @Tags analyses
// @Produce json
// @Param document_kind query string false "Filter by document kind" Enums(bank_statement, check, statement)
// @Param status query string false "Filter by status" Enums(completed, failed)
// @Param risk_level query string false "Filter by risk level"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Analysis,meta=PagMeta} "List of analyses"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Router /analyses [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	var filter domain.AnalysisFilter
	if kind := c.Query("document_kind"); kind != "" {
		filter.DocumentKind = domain.DocumentKind(kind)
		if !filter.DocumentKind.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_kind must be one of bank_statement, check, statement")
			return
		}
	}
	if status := c.Query("status"); status != "" {
		filter.Status = domain.AnalysisStatus(status)
		if filter.Status != domain.AnalysisStatusCompleted && filter.Status != domain.AnalysisStatusFailed {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be 'completed' or 'failed'")
			return
		}
	}
	if level := c.Query("risk_level"); level != "" {
		filter.RiskLevel = domain.RiskLevel(strings.ToLower(strings.TrimSpace(level)))
	}

	records, total, err := h.analysisService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
// @Summary Get an analysis view
// @Description Get the normalized view of one analysis: percent-scaled risk fields, extracted sections, flagged anomalies, and critical factors
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=domain.AnalysisView} "Analysis view"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	view, err := h.analysisService.View(c.Request.Context(), analysisID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Factors handles GET /api/v1/analyses/:id/factors
// @Summary Get critical factors
// @Description Get the derived critical factor list for one analysis
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=FactorsResponse} "Critical factors"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id}/factors [get]
func (h *AnalysisHandler) Factors(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	record, err := h.analysisService.GetByID(c.Request.Context(), analysisID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"critical_factors": record.FactorList()})
}

// Download handles GET /api/v1/analyses/:id/download
// @Summary Download an analysis export
// @Description Render an analysis in the requested format and stream it back as a file attachment
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Param format query string true "Export format" Enums(json, csv, transactions_csv, xlsx)
// @Success 200 {file} file "Encoded export"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or format"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Failure 409 {object} ErrorResponseBody "Analysis has no result data"
// @Router /analyses/{id}/download [get]
func (h *AnalysisHandler) Download(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	format := domain.ExportFormat(c.Query("format"))
	if format == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format query parameter is required")
		return
	}

	rendered, err := h.exportService.Render(c.Request.Context(), analysisID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.FileName))
	c.Data(http.StatusOK, rendered.ContentType, rendered.Data)
}

// Delete handles DELETE /api/v1/analyses/:id
// @Summary Delete an analysis
// @Description Delete an analysis and release any staged exports still held in object storage
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Analysis deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id} [delete]
func (h *AnalysisHandler) Delete(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), analysisID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "analysis deleted"})
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
