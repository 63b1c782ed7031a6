package jwt

import "errors"

var (
	ErrTokenInvalid      = errors.New("jwt: invalid token")
	ErrTokenExpired      = errors.New("jwt: token is expired")
	ErrTokenMissing      = errors.New("jwt: token is missing")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrInvalidTTL        = errors.New("jwt: token lifetime must be positive")
	ErrInvalidSubject    = errors.New("jwt: invalid subject")
)
