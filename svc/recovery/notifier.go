package recovery

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/marketplace/pkg/email"
	"github.com/dmitrymomot/marketplace/pkg/email/templates"
)

// Notifier delivers a recovery link to an account owner.
type Notifier interface {
	SendResetLink(ctx context.Context, to, link string, ttl time.Duration) error
}

// EmailNotifier sends recovery links as HTML email.
type EmailNotifier struct {
	sender       email.Sender
	subject      string
	supportEmail string
}

// EmailNotifierOption configures EmailNotifier.
type EmailNotifierOption func(*EmailNotifier)

// WithSubject overrides the default subject line.
func WithSubject(subject string) EmailNotifierOption {
	return func(n *EmailNotifier) {
		if subject != "" {
			n.subject = subject
		}
	}
}

// WithSupportEmail adds a support contact line to the message.
func WithSupportEmail(addr string) EmailNotifierOption {
	return func(n *EmailNotifier) {
		n.supportEmail = addr
	}
}

// NewEmailNotifier creates a notifier sending through sender.
func NewEmailNotifier(sender email.Sender, opts ...EmailNotifierOption) *EmailNotifier {
	n := &EmailNotifier{
		sender:  sender,
		subject: "Reset your password",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendResetLink renders the reset email and sends it.
func (n *EmailNotifier) SendResetLink(ctx context.Context, to, link string, ttl time.Duration) error {
	body, err := templates.Render(ctx, resetEmail(link, ttl, n.supportEmail))
	if err != nil {
		return fmt.Errorf("recovery: failed to render reset email: %w", err)
	}

	return n.sender.Send(ctx, email.Message{
		To:      to,
		Subject: n.subject,
		HTML:    body,
		Tag:     "password-reset",
	})
}

func resetEmail(link string, ttl time.Duration, supportEmail string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		href := templ.EscapeString(link)
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><body>`+
				`<p>We received a request to reset your password.</p>`+
				`<p><a href="%s">Choose a new password</a></p>`+
				`<p>The link expires in %s and can be used once. If you did not ask for it, ignore this email.</p>`,
			href, templ.EscapeString(ttl.String()),
		)
		if err != nil {
			return err
		}
		if supportEmail != "" {
			addr := templ.EscapeString(supportEmail)
			if _, err := fmt.Fprintf(w, `<p>Questions? Contact <a href="mailto:%s">%s</a>.</p>`, addr, addr); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}
