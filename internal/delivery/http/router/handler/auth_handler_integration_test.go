package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"ecowatch/config"
	"ecowatch/internal/delivery/http/session"
	"ecowatch/internal/delivery/http/validator"
	"ecowatch/internal/domain/entity"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/infra/auth"
	"ecowatch/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepository is a store-free UserRepository for wiring the full
// auth flow in tests.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			clone.PasswordHash = ""

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	clone.PasswordHash = ""

	return &clone, nil
}

func (r *memoryUserRepository) FindCredentialsByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	clone := *user
	r.users[user.Email] = &clone

	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, id uuid.UUID, fields map[string]any) error {
	return nil
}

// memoryFactory hands the same repository to transactional callbacks.
type memoryFactory struct {
	userRepo repository.UserRepository
}

func (f *memoryFactory) UserRepo() repository.UserRepository         { return f.userRepo }
func (f *memoryFactory) ReportRepo() repository.ReportRepository     { return nil }
func (f *memoryFactory) LocationRepo() repository.LocationRepository { return nil }

type memoryTxManager struct {
	factory repository.RepositoryFactory
}

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type authTestEnv struct {
	echo     *echo.Echo
	handler  *AuthHandler
	sessions *session.Manager
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.Env = "local"
	cfg.Session.Secret = "integration-test-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := newMemoryUserRepository()
	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    &memoryTxManager{factory: &memoryFactory{userRepo: userRepo}},
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(),
		TokenService: tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	sessions := session.NewManager(cfg)

	e := echo.New()
	e.Validator = validator.New()

	return &authTestEnv{
		echo:     e,
		handler:  NewAuthHandler(authUsecase, sessions),
		sessions: sessions,
	}
}

func (env *authTestEnv) do(t *testing.T, handlerFunc echo.HandlerFunc, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, handlerFunc(env.echo.NewContext(req, rec)))

	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	return nil
}

func TestAuthHandler_RegisterLoginFlow(t *testing.T) {
	env := newAuthTestEnv(t)

	// Register Ada; response carries the user and a session cookie.
	rec := env.do(t, env.handler.Register, http.MethodPost, "/auth/register",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"securepass123"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
	assert.NotContains(t, rec.Body.String(), "securepass123")

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// The issued cookie decodes back to Ada through /auth/me.
	meRec := env.do(t, env.handler.Me, http.MethodGet, "/auth/me", "",
		&http.Cookie{Name: session.CookieName, Value: cookie.Value})
	assert.Equal(t, http.StatusOK, meRec.Code)
	assert.Contains(t, meRec.Body.String(), "ada@example.com")
	assert.Contains(t, meRec.Body.String(), "Ada Lovelace")

	// Wrong password fails via the error path; unknown email gives the
	// identical message (exercised at the usecase layer; here we pin the
	// HTTP-visible behavior of the valid login).
	loginRec := env.do(t, env.handler.Login, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"securepass123"}`)
	assert.Equal(t, http.StatusOK, loginRec.Code)
	require.NotNil(t, sessionCookie(t, loginRec))
}

func TestAuthHandler_Register_DuplicateEmailErrors(t *testing.T) {
	env := newAuthTestEnv(t)

	body := `{"name":"Ada Lovelace","email":"ada@example.com","password":"securepass123"}`
	env.do(t, env.handler.Register, http.MethodPost, "/auth/register", body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := env.handler.Register(env.echo.NewContext(req, rec))
	require.Error(t, err)
}

func TestAuthHandler_Register_RejectsMissingFields(t *testing.T) {
	env := newAuthTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ada@example.com","password":"securepass123"}`},
		{"missing email", `{"name":"Ada Lovelace","password":"securepass123"}`},
		{"missing password", `{"name":"Ada Lovelace","email":"ada@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, env.handler.Register, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
			assert.Nil(t, sessionCookie(t, rec))
		})
	}
}

func TestAuthHandler_Login_RejectsMissingFields(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := env.do(t, env.handler.Login, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := newAuthTestEnv(t)
	env.do(t, env.handler.Register, http.MethodPost, "/auth/register",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"securepass123"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"wrongpass123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := env.handler.Login(env.echo.NewContext(req, rec))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	env := newAuthTestEnv(t)

	first := env.do(t, env.handler.Logout, http.MethodPost, "/auth/logout", "")
	second := env.do(t, env.handler.Logout, http.MethodPost, "/auth/logout", "")

	for _, rec := range []*httptest.ResponseRecorder{first, second} {
		assert.Equal(t, http.StatusOK, rec.Code)

		cookie := sessionCookie(t, rec)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

func TestAuthHandler_Me_NoSession(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := env.do(t, env.handler.Me, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			User *identityView `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Nil(t, payload.Data.User)
}
