package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/marketplace/pkg/binder"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/validator"
)

// ErrorMapping translates a domain error (matched with errors.Is) to an HTTPError.
type ErrorMapping struct {
	Target error
	HTTP   HTTPError
}

// Map is shorthand for ErrorMapping{target, httpErr}.
func Map(target error, httpErr HTTPError) ErrorMapping {
	return ErrorMapping{Target: target, HTTP: httpErr}
}

// Describe returns the status and client-facing detail for err. Mappings are
// consulted first, in order.
func Describe(err error, mappings ...ErrorMapping) (int, *ErrorDetail) {
	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			return m.HTTP.Code, &ErrorDetail{Code: m.HTTP.Key, Message: http.StatusText(m.HTTP.Code)}
		}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    ErrUnprocessableEntity.Key,
			Message: "validation failed",
			Details: ve.Fields(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, &ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// NewErrorHandler returns an ErrorHandler that logs err (warn for 4xx, error
// for 5xx) and renders the JSON error envelope.
func NewErrorHandler(log *slog.Logger, mappings ...ErrorMapping) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		status, detail := Describe(err, mappings...)

		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Error(err),
			slog.Int("status", status),
			slog.String("code", detail.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}

// Write adapts h to plain net/http call sites such as middleware.
func (h ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	h(NewContext(w, r), err)
}
