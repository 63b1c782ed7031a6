package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrymomot/marketplace/pkg/environment"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a rendered outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"-"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks the fields every transport needs.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: recipient: %v", ErrInvalidMessage, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// NewSender returns a Postmark sender when a server token is configured. Only
// the development environment may fall back to a DevSender; elsewhere a
// missing token is a configuration error.
func NewSender(cfg Config, env environment.Environment) (Sender, error) {
	if cfg.postmarkEnabled() {
		return NewPostmarkSender(cfg)
	}
	if env != environment.Development {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required in %s", ErrInvalidConfig, env)
	}
	return NewDevSender(cfg.DevDir), nil
}
