package account

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

// ErrorMappings translates account errors to HTTP responses.
func ErrorMappings() []handler.ErrorMapping {
	return []handler.ErrorMapping{
		handler.Map(auth.ErrInvalidCredentials, handler.HTTPError{Code: http.StatusUnauthorized, Key: "invalid_credentials"}),
		handler.Map(auth.ErrUnauthenticated, handler.ErrUnauthorized),
		handler.Map(auth.ErrEmailAlreadyExists, handler.HTTPError{Code: http.StatusConflict, Key: "email_taken"}),
		handler.Map(auth.ErrPasswordUnchanged, handler.HTTPError{Code: http.StatusUnprocessableEntity, Key: "password_unchanged"}),
		handler.Map(recovery.ErrResetTokenInvalid, handler.HTTPError{Code: http.StatusBadRequest, Key: "invalid_reset_token"}),
		handler.Map(recovery.ErrNotificationFailed, handler.HTTPError{Code: http.StatusBadGateway, Key: "notification_failed"}),
	}
}
