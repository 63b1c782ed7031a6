package auth

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/marketplace/pkg/logger"
)

// Principal is the authenticated identity of a request.
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type principalKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached by the authentication
// guard. It reports false on public routes.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.ID > 0
}

// LoggerExtractor emits "user_id" for authenticated requests.
func LoggerExtractor(ctx context.Context) (slog.Attr, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.UserID(p.ID), true
}
