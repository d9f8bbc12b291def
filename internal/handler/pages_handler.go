package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/service"
)

// PagesHandler renders the HTML pages and serves the bundled RFID app.
type PagesHandler struct {
	reports *service.ReportService
	rfid    *service.RFIDService
	rfidDir string
	logger  *zap.Logger
}

// NewPagesHandler constructs the page handler. rfidDir is the directory
// holding the built RFID front-end.
func NewPagesHandler(reports *service.ReportService, rfid *service.RFIDService, rfidDir string, logger *zap.Logger) *PagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PagesHandler{reports: reports, rfid: rfid, rfidDir: rfidDir, logger: logger}
}

// Index serves the RFID front-end entry point, reachable at / and /rfid.
func (h *PagesHandler) Index(c *gin.Context) {
	c.File(filepath.Join(h.rfidDir, "index.html"))
}

// Hazard renders the citizen hazard-reporting page.
func (h *PagesHandler) Hazard(c *gin.Context) {
	c.HTML(http.StatusOK, "hazard.html", gin.H{})
}

// History renders the public report list, newest first.
func (h *PagesHandler) History(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{"Reports": reports})
}

// AdminDashboard renders the same report list for administrators.
func (h *PagesHandler) AdminDashboard(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{"Reports": reports})
}

// RFIDDashboard renders the latest logs, the PIN registry, and stats.
func (h *PagesHandler) RFIDDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := h.rfid.Logs(ctx, 100, 0)
	if err != nil {
		h.renderError(c, err)
		return
	}
	pins, err := h.rfid.ListPins(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	stats, err := h.rfid.Stats(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_rfid_dashboard.html", gin.H{
		"Logs":  page.Logs,
		"Pins":  pins,
		"Stats": stats,
	})
}

// ServeRFIDAsset serves files of the RFID front-end for /rfid/* paths.
// Registered as the router's no-route fallback so the catch-all does not
// clash with the named routes.
func (h *PagesHandler) ServeRFIDAsset(c *gin.Context) {
	rel := strings.TrimPrefix(c.Request.URL.Path, "/rfid/")
	if rel == c.Request.URL.Path || rel == "" {
		c.Status(http.StatusNotFound)
		return
	}

	path := filepath.Join(h.rfidDir, filepath.Clean("/"+rel))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func (h *PagesHandler) renderError(c *gin.Context, err error) {
	h.logger.Error("page render failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "Internal server error")
}
