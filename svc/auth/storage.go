package auth

import (
	"context"
	"time"
)

// User is a stored account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal strips the credential material from u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email}
}

// UserReader looks accounts up. Missing accounts yield ErrUserNotFound.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// Storage is the persistence required by Service.
type Storage interface {
	UserReader
	// CreateUser returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
	// UpdatePasswordHash replaces the hash and discards any pending reset token.
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
