package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/civicworks/hazard-portal/internal/auth"
	"github.com/civicworks/hazard-portal/internal/service"
)

// AuthHandler handles the admin login pages and session lifecycle.
type AuthHandler struct {
	service  *service.AuthService
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService, sessions *auth.SessionManager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, sessions: sessions, logger: logger}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// Login verifies the posted credentials. Success stores the admin identity
// in the session cookie and redirects to the dashboard; failure re-renders
// the form with a generic notice.
func (h *AuthHandler) Login(c *gin.Context) {
	req := service.LoginRequest{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	account, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"Notice": "Invalid credentials"})
		return
	}

	if err := h.sessions.SetAdmin(c.Writer, c.Request, account.ID, account.Username); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{"Notice": "Internal server error"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout clears the entire session and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/admin/login")
}
