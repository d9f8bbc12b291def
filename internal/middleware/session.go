package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicworks/hazard-portal/internal/auth"
	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
	"github.com/civicworks/hazard-portal/pkg/response"
)

// LoginPath is where unauthenticated page requests are redirected.
const LoginPath = "/admin/login"

// RequireAdminPage guards HTML routes: a missing session redirects to the
// login page.
func RequireAdminPage(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAdmin(c.Request) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminAPI guards JSON routes: a missing session yields 401.
func RequireAdminAPI(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAdmin(c.Request) {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
