package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cardauth/cardauth/internal/identity"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, or expiry. Validity is purely signature plus expiry; there is no
// server-side revocation list.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier checks a bearer token and returns the authenticated user ID.
// The session middleware depends on this interface so tests can supply a
// deterministic double.
type Verifier interface {
	Verify(token string) (string, error)
}

// Service issues and verifies HS256-signed session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service from the signing secret and token lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token bound to the user, valid for the configured TTL.
func (s *Service) Issue(user identity.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify validates signature and expiry and returns the subject user ID.
func (s *Service) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
