package middleware

import (
	"net/http"

	deliverycontext "ecowatch/internal/delivery/context"
	"ecowatch/internal/delivery/http/session"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/usecase"

	"github.com/labstack/echo/v4"
)

// loginPath is where unauthenticated browser requests are sent.
const loginPath = "/login"

// AuthMiddleware guards routes behind the session cookie.
type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	sessions    *session.Manager
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUsecase usecase.AuthUsecase, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{authUsecase: authUsecase, sessions: sessions}
}

// RequireAuth decodes the session cookie into an identity and stores it on
// the context. Requests without a valid session are redirected to the login
// page rather than answered with a bare status, since these routes serve
// browsers.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.sessions.Read(c)

		identity := m.authUsecase.CurrentUser(c.Request().Context(), token)
		if identity == nil {
			return c.Redirect(http.StatusFound, loginPath)
		}

		SetIdentity(c, identity)

		return next(c)
	}
}

// RequireAdmin gates the admin surface on the presence of the admin marker
// cookie. Absence yields 401, not a redirect.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.sessions.HasAdmin(c) {
			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// SetIdentity stores the authenticated identity on the echo context and the
// request context.
func SetIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(string(deliverycontext.KeyIdentity), identity)
}

// GetIdentity returns the identity placed by RequireAuth, or nil when the
// request is anonymous.
func GetIdentity(c echo.Context) *entity.Identity {
	identity, ok := c.Get(string(deliverycontext.KeyIdentity)).(*entity.Identity)
	if !ok {
		return nil
	}

	return identity
}
