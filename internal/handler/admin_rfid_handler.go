package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicworks/hazard-portal/internal/auth"
	"github.com/civicworks/hazard-portal/internal/service"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
	"github.com/civicworks/hazard-portal/pkg/response"
)

// AdminRFIDHandler handles the session-guarded PIN registry and log APIs.
type AdminRFIDHandler struct {
	service  *service.RFIDService
	sessions *auth.SessionManager
}

// NewAdminRFIDHandler constructs the admin RFID handler.
func NewAdminRFIDHandler(svc *service.RFIDService, sessions *auth.SessionManager) *AdminRFIDHandler {
	return &AdminRFIDHandler{service: svc, sessions: sessions}
}

// ListPins godoc
// @Summary List teacher PINs
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pins [get]
func (h *AdminRFIDHandler) ListPins(c *gin.Context) {
	pins, err := h.service.ListPins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"success": true, "pins": pins})
}

// AddPin godoc
// @Summary Register a teacher PIN
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.AddPinRequest true "PIN payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pins [post]
func (h *AdminRFIDHandler) AddPin(c *gin.Context) {
	var req service.AddPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "PIN must be 4 digits"))
		return
	}

	var createdBy *int64
	if id, ok := h.sessions.AdminID(c.Request); ok {
		createdBy = &id
	}

	id, err := h.service.AddPin(c.Request.Context(), req, createdBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"pin_id":  id,
		"message": "PIN added successfully",
	})
}

// DeletePin godoc
// @Summary Delete a teacher PIN
// @Tags Admin
// @Produce json
// @Param id path int true "PIN ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pins/{id} [delete]
func (h *AdminRFIDHandler) DeletePin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pin id"))
		return
	}

	if err := h.service.DeletePin(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"message": "PIN deleted successfully",
	})
}

// TogglePin godoc
// @Summary Toggle a teacher PIN's active flag
// @Tags Admin
// @Produce json
// @Param id path int true "PIN ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pins/{id}/toggle [post]
func (h *AdminRFIDHandler) TogglePin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pin id"))
		return
	}

	active, err := h.service.TogglePin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success":   true,
		"is_active": active,
		"message":   "PIN status updated",
	})
}

// Logs godoc
// @Summary Retrieve scan logs
// @Tags Admin
// @Produce json
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/rfid-logs [get]
func (h *AdminRFIDHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.service.Logs(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"logs":    page.Logs,
		"total":   page.Total,
		"limit":   page.Limit,
		"offset":  page.Offset,
	})
}
