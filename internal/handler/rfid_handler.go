package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicworks/hazard-portal/internal/service"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
)

// RFIDHandler handles the unauthenticated kiosk endpoints.
type RFIDHandler struct {
	service *service.RFIDService
}

// NewRFIDHandler constructs an RFID handler.
func NewRFIDHandler(svc *service.RFIDService) *RFIDHandler {
	return &RFIDHandler{service: svc}
}

func clientMeta(c *gin.Context) service.ClientMeta {
	return service.ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// VerifyPin godoc
// @Summary Verify a teacher PIN
// @Tags RFID
// @Accept json
// @Produce json
// @Param payload body service.VerifyPinRequest true "PIN payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/rfid/verify-pin [post]
func (h *RFIDHandler) VerifyPin(c *gin.Context) {
	var req service.VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Invalid PIN format"})
		return
	}

	result, err := h.service.VerifyPin(c.Request.Context(), req, clientMeta(c))
	if err != nil {
		appErr := appErrors.FromError(err)
		message := appErr.Message
		if appErr.Status == http.StatusInternalServerError {
			message = "Server error"
		}
		c.JSON(appErr.Status, gin.H{"valid": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":        true,
		"teacher_name": result.TeacherName,
		"pin_id":       result.PinID,
	})
}

// LogScan godoc
// @Summary Record an RFID scan event
// @Tags RFID
// @Accept json
// @Produce json
// @Param payload body service.LogScanRequest true "Scan payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/rfid/log-scan [post]
func (h *RFIDHandler) LogScan(c *gin.Context) {
	var req service.LogScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	id, err := h.service.LogScan(c.Request.Context(), req, clientMeta(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"log_id":  id,
		"message": "Scan logged successfully",
	})
}
