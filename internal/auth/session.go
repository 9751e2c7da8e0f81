// Package auth adapts the external identity provider: it proxies credential
// operations, verifies issued session tokens, and rate-limits repeated
// sign-in failures.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is an immutable snapshot of a verified user session.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// Verifier validates session tokens issued by the identity provider.
// Tokens are HS256 JWTs signed with the provider's shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify parses and validates a session token, returning the session snapshot.
func (v *Verifier) Verify(token string) (*Session, error) {
	var claims sessionClaims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}

	return &Session{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
