// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "ecowatch/internal/delivery/context"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/domain/service"
	"ecowatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minPasswordLength is the registration boundary: exactly 7 characters is
// rejected, exactly 8 is accepted.
const minPasswordLength = 8

// emailPattern is the deliberately simple local@domain.tld shape checked at
// registration. It is not a full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration flow: validation before
// any store access, duplicate detection, hashing, persistence and token
// issuance.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := validateRegistration(input); err != nil {
		srv.log(ctx).Warn("Registration validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, newUser.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check for existing email")
		}

		// A concurrent registration slipping between the check and the
		// insert still surfaces as the conflict error via the unique index.
		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", newUser.Email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Issue(newUser.ID, newUser.Email, newUser.Name)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token after registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	// Never hand the digest back to the delivery layer.
	newUser.PasswordHash = ""

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login authenticates an email/password pair. An unknown email and a wrong
// password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindCredentialsByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed: unknown email", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		srv.log(ctx).Error("Failed to load credentials during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load login credentials")
	}

	// bcrypt is CPU-bound; the check runs outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token after login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	user.PasswordHash = ""

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// CurrentUser decodes a session token into an identity. Absent, forged,
// malformed and expired tokens all yield nil; the caller never sees an error.
func (srv *authService) CurrentUser(ctx context.Context, token string) *entity.Identity {
	if token == "" {
		return nil
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Session token rejected", slog.Any("error", err))

		return nil
	}

	return &entity.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}
}

// validateRegistration enforces the registration preconditions before any
// store access. The returned errors carry user-safe detail messages.
func validateRegistration(input *usecase.RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	if !emailPattern.MatchString(normalizeEmail(input.Email)) {
		return domainerrors.ErrValidationFailed.WithDetails("email address is malformed")
	}

	if len(input.Password) < minPasswordLength {
		return domainerrors.ErrValidationFailed.WithDetails("password must be at least 8 characters long")
	}

	// The confirmation field only arrives through the form entry point.
	if input.PasswordConfirm != "" && input.PasswordConfirm != input.Password {
		return domainerrors.ErrValidationFailed.WithDetails("password confirmation does not match")
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
