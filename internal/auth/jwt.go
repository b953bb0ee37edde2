package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by a session token. The subject is
// the user ID; no other identity data is embedded so a profile update never
// invalidates outstanding tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed, time-bounded session tokens.
// Tokens are self-contained: nothing is stored server-side, which keeps the
// server horizontally scalable, and means rotating the secret invalidates
// every outstanding session.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a session manager with the given secret and token TTL.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime. The session cookie uses the same value.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed session token for the given user ID, valid from now
// until now+TTL.
func (m *SessionManager) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "learnex",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify parses and validates a session token and returns the user ID it was
// issued for. Malformed tokens, bad signatures, and expired tokens all fail
// verification; callers treat them identically and use VerifyReason for logs.
func (m *SessionManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token claims")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}

	return claims.Subject, nil
}

// VerifyReason classifies a Verify error for forensic logging. The
// distinction is never surfaced to clients; every failure maps to the same
// unauthenticated response.
func VerifyReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
