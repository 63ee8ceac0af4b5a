// Package users handles user records, registration and authentication.
package users

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrPasswordTooLong = errors.New("password must not exceed 72 bytes")
	ErrInvalidEmail    = errors.New("email cannot be empty")
)

// User is a registered account. The password hash never serializes.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
