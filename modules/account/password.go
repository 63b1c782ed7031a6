package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" form:"token" query:"token"`
	Password string `json:"password" form:"password"`
}

// MessageResponse is the body of acknowledgement-only endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

const forgotPasswordAck = "If an account exists for this email, a password reset link has been sent."

// forgotPassword answers unknown and known emails alike.
func (m *module) forgotPassword(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	err := m.recovery.RequestReset(ctx, req.Email)
	if err != nil && !errors.Is(err, recovery.ErrAccountNotFound) {
		return handler.Fail(err)
	}
	return handler.JSON(MessageResponse{Message: forgotPasswordAck}, handler.WithJSONStatus(http.StatusAccepted))
}

func (m *module) resetPassword(ctx handler.Context, req ResetPasswordRequest) handler.Response {
	if err := m.recovery.CompleteReset(ctx, req.Token, req.Password); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(MessageResponse{Message: "Password has been reset."})
}
