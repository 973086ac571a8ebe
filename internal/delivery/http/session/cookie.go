// Package session owns the browser cookies that carry the session state.
// The session token cookie holds the signed token; the admin cookie is a
// plain marker whose presence unlocks the admin surface.
package session

import (
	"net/http"
	"time"

	"ecowatch/config"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the cookie carrying the signed session token.
	CookieName = "session_token"

	// AdminCookieName is the presence-only marker for the admin surface.
	AdminCookieName = "admin-session"

	// cookieMaxAge matches the token lifetime, 30 days in seconds.
	cookieMaxAge = int(30 * 24 * time.Hour / time.Second)
)

// Manager writes, reads and clears the session cookies.
type Manager struct {
	secure bool
}

// NewManager creates the cookie manager. Cookies are marked Secure only in
// production so local development over plain HTTP keeps working.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{secure: cfg.IsProduction()}
}

// Write sets the session token cookie on the response.
func (m *Manager) Write(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token from the request, or "" when the cookie is
// absent.
func (m *Manager) Read(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// Clear expires the session token cookie. Clearing an absent cookie is a
// no-op, which keeps logout idempotent.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HasAdmin reports whether the admin marker cookie is present. Only the
// presence is checked; the value is not interpreted.
func (m *Manager) HasAdmin(c echo.Context) bool {
	_, err := c.Cookie(AdminCookieName)

	return err == nil
}
