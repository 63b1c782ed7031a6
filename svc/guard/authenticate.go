package guard

import (
	"log/slog"

	"github.com/dmitrymomot/marketplace/pkg/jwt"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/svc/auth"
)

// TokenVerifier validates a bearer token. Implemented by *jwt.Service.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

type authenticateConfig struct {
	extractor jwt.TokenExtractorFunc
	log       *slog.Logger
}

// AuthenticateOption configures Authenticate.
type AuthenticateOption func(*authenticateConfig)

// WithTokenExtractor replaces the Authorization header extractor.
func WithTokenExtractor(fn jwt.TokenExtractorFunc) AuthenticateOption {
	return func(c *authenticateConfig) {
		if fn != nil {
			c.extractor = fn
		}
	}
}

// WithAuthenticateLogger sets the logger that records verification failures.
func WithAuthenticateLogger(l *slog.Logger) AuthenticateOption {
	return func(c *authenticateConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Authenticate returns the guard that turns a bearer token into a principal.
// Public operations are allowed without looking at the request. Every failure
// on a protected operation is denied with auth.ErrUnauthenticated; the
// underlying cause is logged only.
func Authenticate(verifier TokenVerifier, opts ...AuthenticateOption) Guard {
	cfg := &authenticateConfig{
		extractor: jwt.BearerTokenExtractor,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(req *Request) Decision {
		if req.Operation.Public {
			return Allow()
		}

		ctx := req.HTTP.Context()

		raw, err := cfg.extractor(req.HTTP)
		if err != nil {
			cfg.log.DebugContext(ctx, "bearer token rejected",
				logger.Operation(req.Operation.Name),
				logger.Reason(err),
			)
			return Deny(auth.ErrUnauthenticated)
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			cfg.log.DebugContext(ctx, "bearer token rejected",
				logger.Operation(req.Operation.Name),
				logger.Reason(err),
			)
			return Deny(auth.ErrUnauthenticated)
		}

		id, err := claims.SubjectID()
		if err != nil {
			cfg.log.DebugContext(ctx, "bearer token rejected",
				logger.Operation(req.Operation.Name),
				logger.Reason(err),
			)
			return Deny(auth.ErrUnauthenticated)
		}

		req.SetPrincipal(auth.Principal{ID: id, Email: claims.Email})
		req.HTTP = req.HTTP.WithContext(jwt.SetToken(ctx, raw))
		return Allow()
	}
}
