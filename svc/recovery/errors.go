package recovery

import "errors"

var (
	ErrAccountNotFound    = errors.New("recovery: account not found")
	ErrResetTokenInvalid  = errors.New("recovery: reset token is invalid or expired")
	ErrNotificationFailed = errors.New("recovery: failed to deliver reset link")
)
