package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecowatch/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func devManager() *Manager {
	cfg := &config.Config{}
	cfg.Env.Env = "local"

	return NewManager(cfg)
}

func prodManager() *Manager {
	cfg := &config.Config{}
	cfg.Env.Env = "production"

	return NewManager(cfg)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func TestManager_Write_CookieAttributes(t *testing.T) {
	c, rec := newTestContext(t)

	devManager().Write(c, "signed-token")

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestManager_Write_SecureInProduction(t *testing.T) {
	c, rec := newTestContext(t)

	prodManager().Write(c, "signed-token")

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestManager_Read(t *testing.T) {
	c, _ := newTestContext(t, &http.Cookie{Name: CookieName, Value: "signed-token"})
	assert.Equal(t, "signed-token", devManager().Read(c))

	absent, _ := newTestContext(t)
	assert.Empty(t, devManager().Read(absent))
}

func TestManager_Clear_ExpiresCookie(t *testing.T) {
	c, rec := newTestContext(t, &http.Cookie{Name: CookieName, Value: "signed-token"})

	devManager().Clear(c)

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestManager_Clear_WithoutSessionIsIdempotent(t *testing.T) {
	m := devManager()

	// Clearing with no cookie present behaves exactly like clearing twice.
	c, rec := newTestContext(t)
	m.Clear(c)
	m.Clear(c)

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == CookieName {
			assert.Negative(t, cookie.MaxAge)
		}
	}
}

func TestManager_HasAdmin(t *testing.T) {
	m := devManager()

	withMarker, _ := newTestContext(t, &http.Cookie{Name: AdminCookieName, Value: "anything"})
	assert.True(t, m.HasAdmin(withMarker))

	// The value is never interpreted, only presence counts.
	emptyMarker, _ := newTestContext(t, &http.Cookie{Name: AdminCookieName, Value: ""})
	assert.True(t, m.HasAdmin(emptyMarker))

	withoutMarker, _ := newTestContext(t)
	assert.False(t, m.HasAdmin(withoutMarker))

	// A regular session alone does not unlock the admin surface.
	sessionOnly, _ := newTestContext(t, &http.Cookie{Name: CookieName, Value: "signed-token"})
	assert.False(t, m.HasAdmin(sessionOnly))
}
