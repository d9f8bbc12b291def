package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicworks/hazard-portal/internal/service"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
	"github.com/civicworks/hazard-portal/pkg/response"
)

// ReportHandler handles hazard report endpoints.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Create godoc
// @Summary Submit a hazard report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateReportRequest true "Report payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/report [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req service.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success":   true,
		"report_id": id,
		"message":   "Hazard reported successfully",
	})
}

// Resolve godoc
// @Summary Resolve a hazard report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param payload body service.ResolveReportRequest true "Resolution payload"
// @Success 200 {object} map[string]interface{}
// @Router /admin/resolve/{id} [post]
func (h *ReportHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report id"))
		return
	}

	var req service.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidImage, "Invalid after image"))
		return
	}

	if err := h.service.Resolve(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"message": "Hazard marked as resolved",
	})
}

// Export godoc
// @Summary Export the report table as CSV or PDF
// @Tags Reports
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /api/admin/reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
