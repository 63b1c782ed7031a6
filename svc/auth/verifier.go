package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks email/password pairs.
type CredentialVerifier struct {
	users UserReader
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentialVerifier creates a verifier reading accounts from users.
// bcryptCost should match the cost used for stored hashes.
func NewCredentialVerifier(users UserReader, bcryptCost int) *CredentialVerifier {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &CredentialVerifier{users: users, cost: bcryptCost}
}

// Verify returns the principal for a matching email/password pair. The email
// lookup is exact. An unknown email and a wrong password both yield
// ErrInvalidCredentials; storage failures are returned wrapped.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (Principal, error) {
	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			v.burnCompare(password)
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("auth: failed to load user: %w", err)
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return Principal{}, err
	}
	if !ok {
		return Principal{}, ErrInvalidCredentials
	}

	return user.Principal(), nil
}

// burnCompare spends the same bcrypt work as a real comparison so that
// unknown emails cannot be told apart by response time.
func (v *CredentialVerifier) burnCompare(password string) {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("marketplace-dummy-password"), v.cost)
	})
	_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
}
