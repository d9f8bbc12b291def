package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicworks/hazard-portal/internal/auth"
)

func newGuardedRouter(sessions *auth.SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/dashboard", RequireAdminPage(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	r.GET("/api/admin/pins", RequireAdminAPI(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

// adminCookie performs a fake login and returns the resulting session cookie.
func adminCookie(t *testing.T, sessions *auth.SessionManager) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	require.NoError(t, sessions.SetAdmin(w, req, 1, "admin"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestPageGuardRedirectsAnonymous(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", 3600)
	r := newGuardedRouter(sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAPIGuardRejectsAnonymous(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", 3600)
	r := newGuardedRouter(sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/pins", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestGuardsAdmitSessionCookie(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", 3600)
	r := newGuardedRouter(sessions)
	cookie := adminCookie(t, sessions)

	for _, path := range []string{"/admin/dashboard", "/api/admin/pins"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestGuardsRejectForgedCookie(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", 3600)
	r := newGuardedRouter(sessions)

	// A cookie signed with a different secret must not authenticate.
	other := auth.NewSessionManager("other-secret", 3600)
	cookie := adminCookie(t, other)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/pins", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
