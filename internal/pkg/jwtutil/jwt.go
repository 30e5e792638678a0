// Package jwtutil issues and validates the HS512 bearer tokens shared by the
// auth and orders services. Both sides must be built from the same Config.
package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 24 * time.Hour

// MinKeyLength is the minimum signing key size for HS512, in bytes.
const MinKeyLength = 64

var ErrShortKey = fmt.Errorf("jwtutil: signing key must be at least %d bytes", MinKeyLength)

// Config holds the values every issuer and validator must agree on.
type Config struct {
	Key      string
	Issuer   string
	Audience string
}

// UserClaims are the claims carried by every token.
type UserClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens.
type Manager struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) < MinKeyLength {
		return nil, ErrShortKey
	}
	return &Manager{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Generate issues a token for username with the given role.
func (m *Manager) Generate(username, role string) (string, error) {
	now := m.now()
	claims := UserClaims{
		Name: username,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(m.key)
}

// Validate checks signature, algorithm, issuer, audience and expiry, and
// returns the claims of a valid token.
func (m *Manager) Validate(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
