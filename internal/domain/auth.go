package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateCredential = errors.New("email is already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenInvalid        = errors.New("token is invalid or expired")
	ErrUnauthorized        = errors.New("unauthorized")
)

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns a copy of u safe to hand outside the auth core.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

// Session is the minimal identity projection returned by GET /auth/session.
type Session struct {
	ID       string
	Email    string
	FullName string
}
