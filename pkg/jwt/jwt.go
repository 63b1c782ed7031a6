package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod is the only algorithm accepted on verification.
const SigningMethod = "HS256"

// Claims is the payload carried by every issued token.
type Claims struct {
	Email string `json:"email"`
	gojwt.RegisteredClaims
}

// SubjectID returns the numeric subject id encoded in the "sub" claim.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSubject
	}
	return id, nil
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service signs and verifies tokens with a single HMAC key.
// It is immutable after construction and safe for concurrent use.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	now        func() time.Time
	parser     *gojwt.Parser
}

// New creates a Service from cfg.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSigningKey
	}
	if cfg.TTL <= 0 {
		return nil, ErrInvalidTTL
	}

	s := &Service{
		signingKey: []byte(cfg.Secret),
		ttl:        cfg.TTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{SigningMethod}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(s.issuer))
	}
	s.parser = gojwt.NewParser(parserOpts...)

	return s, nil
}

// TTL returns the lifetime given to issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs a token for the given subject.
func (s *Service) Issue(subjectID int64, email string) (string, error) {
	if subjectID <= 0 {
		return "", ErrInvalidSubject
	}

	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    s.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and expiry and returns its claims.
// A token past its expiry yields ErrTokenExpired; every other failure yields ErrTokenInvalid.
func (s *Service) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		// Signature is checked before claims, so an expired error implies a genuine token.
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, errors.Join(ErrTokenExpired, err)
		}
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	if _, err := claims.SubjectID(); err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	return claims, nil
}
