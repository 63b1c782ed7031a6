package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnauthenticated    = errors.New("auth: unauthenticated")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrEmailAlreadyExists = errors.New("auth: email already registered")
	ErrPasswordUnchanged  = errors.New("auth: new password must differ from the current one")
)
