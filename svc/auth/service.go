package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/sanitizer"
	"github.com/dmitrymomot/marketplace/pkg/validator"
)

// TokenIssuer signs bearer tokens. Implemented by *jwt.Service.
type TokenIssuer interface {
	Issue(subjectID int64, email string) (string, error)
	TTL() time.Duration
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service handles account authentication flows.
type Service struct {
	storage  Storage
	verifier *CredentialVerifier
	tokens   TokenIssuer
	cfg      Config
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

// NewService creates a Service.
func NewService(storage Storage, tokens TokenIssuer, cfg Config, opts ...Option) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	if cfg.MinPasswordLength == 0 {
		cfg.MinPasswordLength = 6
	}

	s := &Service{
		storage:  storage,
		verifier: NewCredentialVerifier(storage, cfg.BcryptCost),
		tokens:   tokens,
		cfg:      cfg,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies credentials and issues a bearer token for the account.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	principal, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.InfoContext(ctx, "login rejected",
				logger.Email(sanitizer.MaskEmail(email)),
				logger.Component("auth"),
				logger.Event("login_failed"),
			)
		}
		return Token{}, err
	}

	accessToken, err := s.tokens.Issue(principal.ID, principal.Email)
	if err != nil {
		return Token{}, fmt.Errorf("auth: failed to issue token: %w", err)
	}

	s.log.InfoContext(ctx, "login succeeded",
		logger.UserID(principal.ID),
		logger.Component("auth"),
		logger.Event("login"),
	)

	return Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (Principal, error) {
	email = strings.TrimSpace(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.MaxLen("email", email, 254),
		validator.MinLen("password", password, s.cfg.MinPasswordLength),
		validator.MaxBytes("password", password, MaxPasswordBytes),
	); err != nil {
		return Principal{}, err
	}

	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return Principal{}, err
	}

	user, err := s.storage.CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return Principal{}, err
		}
		return Principal{}, fmt.Errorf("auth: failed to create user: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		logger.UserID(user.ID),
		logger.Component("auth"),
		logger.Event("register"),
	)

	return user.Principal(), nil
}

// ChangePassword replaces the password of an authenticated account after
// re-checking the current one.
func (s *Service) ChangePassword(ctx context.Context, principal Principal, oldPassword, newPassword string) error {
	if err := validator.Apply(
		validator.Required("old_password", oldPassword),
		validator.MinLen("new_password", newPassword, s.cfg.MinPasswordLength),
		validator.MaxBytes("new_password", newPassword, MaxPasswordBytes),
	); err != nil {
		return err
	}

	user, err := s.storage.GetUserByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("auth: failed to load user: %w", err)
	}

	ok, err := CheckPassword(user.PasswordHash, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if oldPassword == newPassword {
		return ErrPasswordUnchanged
	}

	hash, err := HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.storage.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("auth: failed to update password: %w", err)
	}

	s.log.InfoContext(ctx, "password changed",
		logger.UserID(user.ID),
		logger.Component("auth"),
		logger.Event("password_changed"),
	)

	return nil
}
