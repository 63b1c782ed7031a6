package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/modules/account"
	"github.com/dmitrymomot/marketplace/modules/catalog"
	"github.com/dmitrymomot/marketplace/pkg/clientip"
	"github.com/dmitrymomot/marketplace/pkg/environment"
	"github.com/dmitrymomot/marketplace/pkg/httpserver"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/requestid"
	"github.com/dmitrymomot/marketplace/svc/auth"
	catalogsvc "github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

// Deps are the collaborators NewRouter wires together.
type Deps struct {
	Env    environment.Environment
	Logger *slog.Logger

	Auth     *auth.Service
	Recovery *recovery.Service
	Catalog  *catalogsvc.Service

	Tokens guard.TokenVerifier
	Owners guard.OwnerResolver

	// RequestTimeout is applied to every request when positive.
	RequestTimeout  time.Duration
	ReadinessChecks []func(context.Context) error
}

// NewRouter builds the HTTP handler: request id, client ip, environment,
// panic recovery and the request timeout wrap every route, and each API route
// runs the guard chain authenticate -> ownership before its handler.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	eh := handler.NewErrorHandler(log, ErrorMappings()...)

	dispatcher := guard.NewDispatcher(
		[]guard.Guard{
			guard.Authenticate(deps.Tokens, guard.WithAuthenticateLogger(log)),
			guard.Ownership(deps.Owners, guard.WithOwnershipLogger(log)),
		},
		guard.WithDenyHandler(eh.Write),
		guard.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(deps.Env),
		handler.Recoverer(log, eh),
	)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, deps.ReadinessChecks...))

	r.Group(account.Routes(account.RouterOptions{
		Auth:         deps.Auth,
		Recovery:     deps.Recovery,
		Dispatcher:   dispatcher,
		ErrorHandler: eh,
		Logger:       log,
	}))
	r.Group(catalog.Routes(catalog.RouterOptions{
		Catalog:      deps.Catalog,
		Dispatcher:   dispatcher,
		ErrorHandler: eh,
		Logger:       log,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		eh.Write(w, r, handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		eh.Write(w, r, handler.HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"})
	})

	return r
}
