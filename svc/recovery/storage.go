package recovery

import (
	"context"
	"time"
)

// Account is the part of a user record the reset flow needs.
type Account struct {
	ID    int64
	Email string
}

// Storage persists reset credentials on accounts.
type Storage interface {
	// GetAccountByEmail returns ErrAccountNotFound when no account matches exactly.
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	// SetResetToken overwrites any pending token of the account.
	SetResetToken(ctx context.Context, accountID int64, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken stores passwordHash and clears the reset fields of the
	// account whose token hash matches and has not expired at now. It returns
	// ErrResetTokenInvalid when no account qualifies.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*Account, error)
}
