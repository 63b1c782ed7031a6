package guard

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/svc/auth"
)

// DenyHandler writes the response for a denied request.
type DenyHandler func(w http.ResponseWriter, r *http.Request, reason error)

// Dispatcher runs an ordered guard chain in front of route handlers.
type Dispatcher struct {
	guards []Guard
	deny   DenyHandler
	log    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDenyHandler replaces the default plain-text deny handler.
func WithDenyHandler(h DenyHandler) DispatcherOption {
	return func(d *Dispatcher) {
		if h != nil {
			d.deny = h
		}
	}
}

// WithLogger sets the logger used to record denials.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDispatcher creates a dispatcher running guards in slice order.
func NewDispatcher(guards []Guard, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		guards: append([]Guard(nil), guards...),
		deny:   defaultDenyHandler,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func defaultDenyHandler(w http.ResponseWriter, _ *http.Request, reason error) {
	code := StatusCode(reason)
	http.Error(w, http.StatusText(code), code)
}

// Handle returns next guarded by the chain for op.
func (d *Dispatcher) Handle(op Operation, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := &Request{HTTP: r, Operation: op}

		for _, g := range d.guards {
			decision := g(req)
			if decision.Allowed {
				continue
			}

			d.log.InfoContext(req.HTTP.Context(), "request denied",
				logger.Operation(op.Name),
				logger.Reason(decision.Reason),
				logger.Component("guard"),
			)
			d.deny(w, req.HTTP, decision.Reason)
			return
		}

		r = req.HTTP
		if p, ok := req.Principal(); ok {
			r = r.WithContext(auth.WithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

// HandleFunc is Handle for plain functions.
func (d *Dispatcher) HandleFunc(op Operation, next http.HandlerFunc) http.Handler {
	return d.Handle(op, next)
}
