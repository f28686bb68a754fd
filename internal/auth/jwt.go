// Package auth covers credentials: bcrypt password hashing, JWT
// issuance and verification, and the bearer-token middleware that turns
// a request header into an explicit Identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime is how long an issued token stays valid. There is no
// server-side session; expiry is the only revocation.
const tokenLifetime = 24 * time.Hour

// TokenService signs and verifies JWTs with an HMAC secret. The same
// secret serves both operations.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the username rides in the standard "sub"
// claim, the account kind and admin flag in private claims.
type claims struct {
	Kind    Kind `json:"kind"`
	IsAdmin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given identity, valid for 24 hours.
func (s *TokenService) Generate(identity Identity) (string, error) {
	now := time.Now()

	c := claims{
		Kind:    identity.Kind,
		IsAdmin: identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    "dogmatch",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string and returns the identity
// it was issued for. Expired, malformed and wrongly-signed tokens all
// come back as a plain error; callers treat them uniformly as
// unauthenticated.
func (s *TokenService) Validate(tokenString string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("auth: parsing token: %w", err)
	}
	if !token.Valid {
		return Identity{}, errors.New("auth: invalid token")
	}

	return Identity{
		Username: c.Subject,
		Kind:     c.Kind,
		IsAdmin:  c.IsAdmin,
	}, nil
}
