// Package account serves login, registration and password management.
package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/pkg/binder"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/guard"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

// RouterOptions holds the collaborators of the account routes.
type RouterOptions struct {
	Auth       *auth.Service
	Recovery   *recovery.Service
	Dispatcher *guard.Dispatcher
	// ErrorHandler renders failed requests. Defaults to NewErrorHandler(Logger, ErrorMappings()...).
	ErrorHandler handler.ErrorHandler
	Logger       *slog.Logger
}

type module struct {
	auth     *auth.Service
	recovery *recovery.Service
	log      *slog.Logger
}

// Routes registers the account routes:
//
//	POST  /auth/login              public
//	GET   /auth/me                 authenticated
//	POST  /users                   public
//	PATCH /users/me/password       authenticated
//	POST  /email/forgot-password   public
//	POST  /email/reset-password    public
//
// Use it with chi.Router.Group.
func Routes(opts RouterOptions) func(r chi.Router) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	eh := opts.ErrorHandler
	if eh == nil {
		eh = handler.NewErrorHandler(log, ErrorMappings()...)
	}

	m := &module{auth: opts.Auth, recovery: opts.Recovery, log: log}
	d := opts.Dispatcher

	return func(r chi.Router) {
		r.Method(http.MethodPost, "/auth/login", d.Handle(guard.Public("auth.login"),
			handler.Wrap(m.login,
				handler.WithBinders[LoginRequest](binder.JSON(), binder.Form()),
				handler.WithErrorHandler[LoginRequest](eh),
			)))

		r.Method(http.MethodGet, "/auth/me", d.Handle(guard.Protected("auth.me", guard.ActionRead),
			handler.Wrap(m.me, handler.WithErrorHandler[struct{}](eh))))

		r.Method(http.MethodPost, "/users", d.Handle(guard.Public("users.register"),
			handler.Wrap(m.register,
				handler.WithBinders[RegisterRequest](binder.JSON(), binder.Form()),
				handler.WithErrorHandler[RegisterRequest](eh),
			)))

		r.Method(http.MethodPatch, "/users/me/password", d.Handle(guard.Protected("users.change_password", guard.ActionUpdate),
			handler.Wrap(m.changePassword,
				handler.WithBinders[ChangePasswordRequest](binder.JSON(), binder.Form()),
				handler.WithErrorHandler[ChangePasswordRequest](eh),
			)))

		r.Method(http.MethodPost, "/email/forgot-password", d.Handle(guard.Public("email.forgot_password"),
			handler.Wrap(m.forgotPassword,
				handler.WithBinders[ForgotPasswordRequest](binder.JSON(), binder.Form()),
				handler.WithErrorHandler[ForgotPasswordRequest](eh),
			)))

		r.Method(http.MethodPost, "/email/reset-password", d.Handle(guard.Public("email.reset_password"),
			handler.Wrap(m.resetPassword,
				handler.WithBinders[ResetPasswordRequest](binder.JSON(), binder.Form(), binder.Query()),
				handler.WithErrorHandler[ResetPasswordRequest](eh),
			)))
	}
}
