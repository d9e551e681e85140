package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserInactive = errors.New("user is inactive")
var ErrForbidden = errors.New("access forbidden")

// User models an account on the platform. Accounts are soft-deactivated,
// never physically deleted, so dependent records keep valid references.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// CanAuthenticate reports whether the account may log in or use a token.
func (u *User) CanAuthenticate() bool {
	return u.Active && u.DeletedAt == nil
}
