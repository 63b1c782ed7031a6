package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/marketplace/pkg/validator"
)

var testConfig = Config{BcryptCost: bcrypt.MinCost, MinPasswordLength: 6}

func TestService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("issues bearer token", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		tokens := &MockTokenIssuer{}
		storage.On("GetUserByEmail", mock.Anything, "a@x.io").Return(testUser(t, 3, "a@x.io", "secret1"), nil)
		tokens.On("Issue", int64(3), "a@x.io").Return("signed.token.value", nil)
		tokens.On("TTL").Return(24 * time.Hour)

		svc := NewService(storage, tokens, testConfig)
		tok, err := svc.Login(ctx, "a@x.io", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "signed.token.value", tok.AccessToken)
		assert.Equal(t, "Bearer", tok.TokenType)
		assert.Equal(t, int64(86400), tok.ExpiresIn)
		tokens.AssertExpectations(t)
	})

	t.Run("bad credentials never reach the issuer", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		tokens := &MockTokenIssuer{}
		storage.On("GetUserByEmail", mock.Anything, "a@x.io").Return(testUser(t, 3, "a@x.io", "secret1"), nil)

		svc := NewService(storage, tokens, testConfig)
		_, err := svc.Login(ctx, "a@x.io", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("issuer failure", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		tokens := &MockTokenIssuer{}
		storage.On("GetUserByEmail", mock.Anything, "a@x.io").Return(testUser(t, 3, "a@x.io", "secret1"), nil)
		tokens.On("Issue", int64(3), "a@x.io").Return("", errors.New("boom"))

		svc := NewService(storage, tokens, testConfig)
		_, err := svc.Login(ctx, "a@x.io", "secret1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates account with hashed password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("CreateUser", mock.Anything, "new@x.io", mock.MatchedBy(func(hash string) bool {
			ok, err := CheckPassword(hash, "secret1")
			return err == nil && ok
		})).Return(&User{ID: 11, Email: "new@x.io"}, nil)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		p, err := svc.Register(ctx, "  new@x.io ", "secret1")

		require.NoError(t, err)
		assert.Equal(t, Principal{ID: 11, Email: "new@x.io"}, p)
		storage.AssertExpectations(t)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		_, err := svc.Register(ctx, "not-an-email", "short")

		require.Error(t, err)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("email"))
		assert.True(t, verrs.Has("password"))
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("CreateUser", mock.Anything, "dup@x.io", mock.Anything).Return(nil, ErrEmailAlreadyExists)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		_, err := svc.Register(ctx, "dup@x.io", "secret1")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	principal := Principal{ID: 5, Email: "me@x.io"}

	t.Run("updates hash", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetUserByID", mock.Anything, int64(5)).Return(testUser(t, 5, "me@x.io", "secret1"), nil)
		storage.On("UpdatePasswordHash", mock.Anything, int64(5), mock.MatchedBy(func(hash string) bool {
			ok, _ := CheckPassword(hash, "secret2")
			return ok
		})).Return(nil)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		require.NoError(t, svc.ChangePassword(ctx, principal, "secret1", "secret2"))
		storage.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetUserByID", mock.Anything, int64(5)).Return(testUser(t, 5, "me@x.io", "secret1"), nil)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		err := svc.ChangePassword(ctx, principal, "wrong1", "secret2")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		storage.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetUserByID", mock.Anything, int64(5)).Return(testUser(t, 5, "me@x.io", "secret1"), nil)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		err := svc.ChangePassword(ctx, principal, "secret1", "secret1")

		assert.ErrorIs(t, err, ErrPasswordUnchanged)
	})

	t.Run("deleted account", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		storage.On("GetUserByID", mock.Anything, int64(5)).Return(nil, ErrUserNotFound)

		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		err := svc.ChangePassword(ctx, principal, "secret1", "secret2")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("short new password", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage, &MockTokenIssuer{}, testConfig)
		err := svc.ChangePassword(ctx, principal, "secret1", "abc")

		assert.True(t, validator.IsValidationError(err))
	})
}

func TestPrincipalFromContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{ID: 9, Email: "p@x.io"})
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), p.ID)

	attr, ok := LoggerExtractor(ctx)
	require.True(t, ok)
	assert.Equal(t, "user_id", attr.Key)
}
