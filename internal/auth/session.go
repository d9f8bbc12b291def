package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SessionName     = "hazard-portal-session"
	SessionLoggedIn = "admin_logged_in"
	SessionUsername = "admin_username"
	SessionAdminID  = "admin_id"
)

// SessionManager wraps a signed cookie store holding the admin login state.
// All session data lives client-side, signed with the configured secret.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager builds the cookie store.
func NewSessionManager(secret string, maxAge int) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

func (m *SessionManager) get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, SessionName)
}

// SetAdmin marks the session as an authenticated admin.
func (m *SessionManager) SetAdmin(w http.ResponseWriter, r *http.Request, adminID int64, username string) error {
	session, err := m.get(r)
	if err != nil {
		return err
	}

	session.Values[SessionLoggedIn] = true
	session.Values[SessionUsername] = username
	session.Values[SessionAdminID] = adminID

	return session.Save(r, w)
}

// IsAdmin reports whether the request carries a valid admin session.
func (m *SessionManager) IsAdmin(r *http.Request) bool {
	session, err := m.get(r)
	if err != nil {
		return false
	}

	loggedIn, ok := session.Values[SessionLoggedIn].(bool)
	return ok && loggedIn
}

// AdminID returns the admin id stored in the session, if any.
func (m *SessionManager) AdminID(r *http.Request) (int64, bool) {
	session, err := m.get(r)
	if err != nil {
		return 0, false
	}

	id, ok := session.Values[SessionAdminID].(int64)
	return id, ok
}

// Username returns the admin username stored in the session.
func (m *SessionManager) Username(r *http.Request) string {
	session, err := m.get(r)
	if err != nil {
		return ""
	}

	name, _ := session.Values[SessionUsername].(string)
	return name
}

// Clear wipes the entire session.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := m.get(r)
	if err != nil {
		return err
	}

	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1

	return session.Save(r, w)
}
