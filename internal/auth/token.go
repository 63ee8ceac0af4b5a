// Package auth issues and verifies the API's bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/users"
)

const (
	issuer   = "taskdeck"
	audience = "taskdeck-users"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID string
	Email  string
}

// Minter signs and verifies HS256 tokens.
type Minter struct {
	secret []byte
	ttl    time.Duration
}

// NewMinter creates a Minter. A zero ttl defaults to 15 minutes.
func NewMinter(secret []byte, ttl time.Duration) *Minter {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &Minter{secret: secret, ttl: ttl}
}

// Mint issues a short-lived access token for the user.
func (m *Minter) Mint(u *users.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
		"iss":   issuer,
		"aud":   audience,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, issuer and audience, returning the claims.
func (m *Minter) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)

	return Claims{UserID: sub, Email: email}, nil
}
