package account

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/svc/auth"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func (m *module) login(ctx handler.Context, req LoginRequest) handler.Response {
	token, err := m.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(token)
}

func (m *module) me(ctx handler.Context, _ struct{}) handler.Response {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	return handler.JSON(principal)
}

func (m *module) register(ctx handler.Context, req RegisterRequest) handler.Response {
	principal, err := m.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(principal, handler.WithJSONStatus(http.StatusCreated))
}

func (m *module) changePassword(ctx handler.Context, req ChangePasswordRequest) handler.Response {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	if err := m.auth.ChangePassword(ctx, principal, req.OldPassword, req.NewPassword); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}
