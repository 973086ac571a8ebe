package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the claim set embedded in a session token: the subject's
// identity and the standard registered claims (expiry, issued-at).
type SessionClaims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	Name   string    `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the self-contained session tokens carried
// by the session cookie. Tokens are stateless; there is no server-side
// revocation list, so rotating the signing secret invalidates every
// outstanding token.
type TokenService interface {
	// Issue serializes the identity into a signed token with a fixed
	// 30-day expiration.
	Issue(userID uuid.UUID, email, name string) (string, error)

	// Verify decodes and validates a token string. It returns an error when
	// the signature does not match, the token is malformed, or the
	// expiration has passed.
	Verify(token string) (*SessionClaims, error)
}
