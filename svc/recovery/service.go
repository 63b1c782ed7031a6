package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/sanitizer"
	"github.com/dmitrymomot/marketplace/pkg/validator"
	"github.com/dmitrymomot/marketplace/svc/auth"
)

// Service runs the password-reset lifecycle.
type Service struct {
	storage  Storage
	notifier Notifier
	cfg      Config
	policy   auth.Config
	now      func() time.Time
	log      *slog.Logger
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPasswordPolicy sets the bcrypt cost and minimum length for new passwords.
func WithPasswordPolicy(cfg auth.Config) Option {
	return func(s *Service) {
		if cfg.BcryptCost > 0 {
			s.policy.BcryptCost = cfg.BcryptCost
		}
		if cfg.MinPasswordLength > 0 {
			s.policy.MinPasswordLength = cfg.MinPasswordLength
		}
	}
}

// NewService creates a Service.
func NewService(storage Storage, notifier Notifier, cfg Config, opts ...Option) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 15 * time.Minute
	}

	s := &Service{
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
		policy:   auth.Config{BcryptCost: auth.DefaultBcryptCost, MinPasswordLength: 6},
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestReset issues a new reset token for the account and sends the recovery
// link. Any pending token of the account stops working. A delivery failure is
// reported as ErrNotificationFailed; the stored token is kept so the request
// can simply be repeated.
func (s *Service) RequestReset(ctx context.Context, emailAddr string) error {
	masked := sanitizer.MaskEmail(emailAddr)

	account, err := s.storage.GetAccountByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.log.InfoContext(ctx, "password reset requested for unknown account",
				logger.Email(masked),
				logger.Component("recovery"),
			)
			return ErrAccountNotFound
		}
		return fmt.Errorf("recovery: failed to load account: %w", err)
	}

	raw, hash, err := GenerateToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.cfg.TokenTTL)
	if err := s.storage.SetResetToken(ctx, account.ID, hash, expiresAt); err != nil {
		return fmt.Errorf("recovery: failed to store reset token: %w", err)
	}

	if err := s.notifier.SendResetLink(ctx, account.Email, s.resetLink(raw), s.cfg.TokenTTL); err != nil {
		s.log.ErrorContext(ctx, "failed to deliver reset link",
			logger.UserID(account.ID),
			logger.Error(err),
			logger.Component("recovery"),
		)
		return errors.Join(ErrNotificationFailed, err)
	}

	s.log.InfoContext(ctx, "password reset requested",
		logger.UserID(account.ID),
		logger.Component("recovery"),
		logger.Event("reset_requested"),
	)
	return nil
}

// CompleteReset sets a new password for the account holding rawToken and
// invalidates the token. Unknown, expired and already used tokens all yield
// ErrResetTokenInvalid.
func (s *Service) CompleteReset(ctx context.Context, rawToken, newPassword string) error {
	if err := validator.Apply(
		validator.MinLen("password", newPassword, s.policy.MinPasswordLength),
		validator.MaxBytes("password", newPassword, auth.MaxPasswordBytes),
	); err != nil {
		return err
	}

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ErrResetTokenInvalid
	}

	passwordHash, err := auth.HashPassword(newPassword, s.policy.BcryptCost)
	if err != nil {
		return err
	}

	account, err := s.storage.ConsumeResetToken(ctx, HashToken(rawToken), s.now(), passwordHash)
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("recovery: failed to consume reset token: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		logger.UserID(account.ID),
		logger.Component("recovery"),
		logger.Event("reset_completed"),
	)
	return nil
}

func (s *Service) resetLink(raw string) string {
	return strings.TrimRight(s.cfg.URLBase, "/") + "/reset-password?token=" + url.QueryEscape(raw)
}
