// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"ecowatch/internal/delivery/http/response"
	"ecowatch/internal/delivery/http/session"
	"ecowatch/internal/domain/entity"
	"ecowatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userView is the user representation returned to clients. The password
// digest never appears here.
type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserView(user *entity.User) userView {
	return userView{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// identityView is the decoded session identity returned by /auth/me.
type identityView struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	sessions *session.Manager
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		sessions: sessions,
	}
}

// Register handles the registration request. On success the session cookie
// is written so the new account is immediately signed in.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.sessions.Write(c, output.Token)

	return response.Success(c, http.StatusCreated, newUserView(output.User), "User registered successfully")
}

// Login handles the login request and writes the session cookie on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.sessions.Write(c, output.Token)

	return response.Success(c, http.StatusOK, newUserView(output.User), "Login successful")
}

// Logout expires the session cookie. Logging out without a session succeeds
// the same way, so the operation is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Me returns the identity decoded from the session cookie, or a null user
// when there is no valid session. It never fails.
func (h *AuthHandler) Me(c echo.Context) error {
	identity := h.uc.CurrentUser(c.Request().Context(), h.sessions.Read(c))
	if identity == nil {
		return response.Success(c, http.StatusOK, map[string]any{"user": nil}, "No active session")
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": identityView{
		UserID: identity.UserID.String(),
		Email:  identity.Email,
		Name:   identity.Name,
	}}, "Session active")
}

// LoginPage is the target of RequireAuth redirects. The frontend renders the
// actual form; this endpoint only acknowledges the entry point.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": "Please sign in"}, "Login required")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
