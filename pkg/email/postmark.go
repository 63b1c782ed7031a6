package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers messages through the Postmark transactional API.
type PostmarkSender struct {
	client *postmark.Client
	from   string
	reply  string
}

// PostmarkOption configures a PostmarkSender.
type PostmarkOption func(*PostmarkSender)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(url string) PostmarkOption {
	return func(s *PostmarkSender) {
		if url != "" {
			s.client.BaseURL = url
		}
	}
}

// NewPostmarkSender validates cfg and builds a sender.
func NewPostmarkSender(cfg Config, opts ...PostmarkOption) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(cfg.SenderEmail); err != nil {
		return nil, fmt.Errorf("%w: sender email: %v", ErrInvalidConfig, err)
	}
	if cfg.SupportEmail != "" {
		if _, err := mail.ParseAddress(cfg.SupportEmail); err != nil {
			return nil, fmt.Errorf("%w: support email: %v", ErrInvalidConfig, err)
		}
	}

	s := &PostmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		from:   cfg.SenderEmail,
		reply:  cfg.SupportEmail,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send implements Sender. Link tracking is disabled because messages carry
// single-use links.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.reply,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TrackOpens: false,
		TrackLinks: "None",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
