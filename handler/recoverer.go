package handler

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/marketplace/pkg/logger"
)

// Recoverer is middleware that turns a panic into a logged
// ErrInternalServerError rendered by eh. http.ErrAbortHandler is re-raised so
// net/http can abort the connection.
func Recoverer(log *slog.Logger, eh ErrorHandler) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(rec)
				}

				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
					logger.Component("recoverer"),
				)

				if r.Header.Get("Connection") != "Upgrade" {
					eh.Write(w, r, ErrInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
