// Package recovery implements the password-reset lifecycle.
//
// RequestReset stores the SHA-256 hash of a fresh random token on the account,
// overwriting any pending one, and sends the raw token to the account owner in a
// recovery link. CompleteReset consumes a raw token exactly once: the new
// password is stored and both reset fields are cleared in a single conditional
// update, so a replayed, expired or overwritten token is rejected with
// ErrResetTokenInvalid.
//
// Raw tokens are never persisted or logged.
package recovery
