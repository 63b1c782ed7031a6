// Package memory is an in-process implementation of every storage interface of
// the marketplace. It backs development runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

var (
	_ auth.Storage        = (*Storage)(nil)
	_ recovery.Storage    = (*Storage)(nil)
	_ catalog.Storage     = (*Storage)(nil)
	_ guard.OwnerResolver = (*Storage)(nil)
)

type userRecord struct {
	auth.User
	resetTokenHash      string
	resetTokenExpiresAt time.Time
}

// Storage keeps all records in maps guarded by a single mutex.
type Storage struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    map[int64]*userRecord
	stores   map[int64]catalog.Store
	products map[int64]catalog.Product

	nextUserID    int64
	nextStoreID   int64
	nextProductID int64
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{
		now:      time.Now,
		users:    make(map[int64]*userRecord),
		stores:   make(map[int64]catalog.Store),
		products: make(map[int64]catalog.Product),
	}
}

func (s *Storage) findUserByEmail(email string) *userRecord {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// GetUserByEmail implements auth.UserReader.
func (s *Storage) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUserByEmail(email)
	if u == nil {
		return nil, auth.ErrUserNotFound
	}
	user := u.User
	return &user, nil
}

// GetUserByID implements auth.UserReader.
func (s *Storage) GetUserByID(_ context.Context, id int64) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	user := u.User
	return &user, nil
}

// CreateUser implements auth.Storage.
func (s *Storage) CreateUser(_ context.Context, email, passwordHash string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByEmail(email) != nil {
		return nil, auth.ErrEmailAlreadyExists
	}

	s.nextUserID++
	u := &userRecord{User: auth.User{
		ID:           s.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}}
	s.users[u.ID] = u

	user := u.User
	return &user, nil
}

// UpdatePasswordHash implements auth.Storage. Pending reset tokens are discarded.
func (s *Storage) UpdatePasswordHash(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.resetTokenHash = ""
	u.resetTokenExpiresAt = time.Time{}
	return nil
}

// GetAccountByEmail implements recovery.Storage.
func (s *Storage) GetAccountByEmail(_ context.Context, email string) (*recovery.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUserByEmail(email)
	if u == nil {
		return nil, recovery.ErrAccountNotFound
	}
	return &recovery.Account{ID: u.ID, Email: u.Email}, nil
}

// SetResetToken implements recovery.Storage.
func (s *Storage) SetResetToken(_ context.Context, accountID int64, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[accountID]
	if !ok {
		return recovery.ErrAccountNotFound
	}
	u.resetTokenHash = tokenHash
	u.resetTokenExpiresAt = expiresAt
	return nil
}

// ConsumeResetToken implements recovery.Storage. Matching and clearing happen
// under one lock, so concurrent consumers of the same token see exactly one
// success.
func (s *Storage) ConsumeResetToken(_ context.Context, tokenHash string, now time.Time, passwordHash string) (*recovery.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tokenHash == "" {
		return nil, recovery.ErrResetTokenInvalid
	}
	for _, u := range s.users {
		if u.resetTokenHash != tokenHash {
			continue
		}
		if !u.resetTokenExpiresAt.After(now) {
			return nil, recovery.ErrResetTokenInvalid
		}
		u.PasswordHash = passwordHash
		u.resetTokenHash = ""
		u.resetTokenExpiresAt = time.Time{}
		return &recovery.Account{ID: u.ID, Email: u.Email}, nil
	}
	return nil, recovery.ErrResetTokenInvalid
}

// CreateStore implements catalog.Storage.
func (s *Storage) CreateStore(_ context.Context, ownerID int64, name string) (*catalog.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextStoreID++
	store := catalog.Store{ID: s.nextStoreID, OwnerID: ownerID, Name: name, CreatedAt: s.now()}
	s.stores[store.ID] = store
	return &store, nil
}

// GetStore implements catalog.Storage.
func (s *Storage) GetStore(_ context.Context, id int64) (*catalog.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[id]
	if !ok {
		return nil, catalog.ErrStoreNotFound
	}
	return &store, nil
}

// CreateProduct implements catalog.Storage.
func (s *Storage) CreateProduct(_ context.Context, p catalog.NewProduct) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[p.StoreID]; !ok {
		return nil, catalog.ErrStoreNotFound
	}

	s.nextProductID++
	now := s.now()
	product := catalog.Product{
		ID:          s.nextProductID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products[product.ID] = product
	return &product, nil
}

// GetProduct implements catalog.Storage.
func (s *Storage) GetProduct(_ context.Context, id int64) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &product, nil
}

// UpdateProduct implements catalog.Storage.
func (s *Storage) UpdateProduct(_ context.Context, id int64, patch catalog.ProductPatch) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		product.PriceCents = *patch.PriceCents
	}
	product.UpdatedAt = s.now()
	s.products[id] = product
	return &product, nil
}

// DeleteProduct implements catalog.Storage.
func (s *Storage) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// StoreOwner implements guard.OwnerResolver.
func (s *Storage) StoreOwner(_ context.Context, storeID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[storeID]
	if !ok {
		return 0, guard.ErrResourceNotFound
	}
	return store.OwnerID, nil
}

// ProductOwner implements guard.OwnerResolver.
func (s *Storage) ProductOwner(_ context.Context, productID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return 0, guard.ErrResourceNotFound
	}
	store, ok := s.stores[product.StoreID]
	if !ok {
		return 0, guard.ErrResourceNotFound
	}
	return store.OwnerID, nil
}
