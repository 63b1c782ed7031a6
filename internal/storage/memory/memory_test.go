package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/internal/storage/memory"
	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

func TestStorage_Users(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.New()

	u, err := s.CreateUser(ctx, "a@x.io", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = s.CreateUser(ctx, "a@x.io", "hash")
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	got, err := s.GetUserByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByEmail(ctx, "A@x.io")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, 42)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestStorage_ResetTokenLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := memory.New()

	u, err := s.CreateUser(ctx, "a@x.io", "old")
	require.NoError(t, err)

	require.NoError(t, s.SetResetToken(ctx, u.ID, "h1", now.Add(15*time.Minute)))
	require.NoError(t, s.SetResetToken(ctx, u.ID, "h2", now.Add(15*time.Minute)))

	_, err = s.ConsumeResetToken(ctx, "h1", now, "new")
	assert.ErrorIs(t, err, recovery.ErrResetTokenInvalid, "overwritten token")

	_, err = s.ConsumeResetToken(ctx, "h2", now.Add(15*time.Minute), "new")
	assert.ErrorIs(t, err, recovery.ErrResetTokenInvalid, "expired token")

	acc, err := s.ConsumeResetToken(ctx, "h2", now, "new")
	require.NoError(t, err)
	assert.Equal(t, u.ID, acc.ID)

	_, err = s.ConsumeResetToken(ctx, "h2", now, "newer")
	assert.ErrorIs(t, err, recovery.ErrResetTokenInvalid, "replayed token")

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)
}

func TestStorage_ConsumeResetToken_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	s := memory.New()

	u, err := s.CreateUser(ctx, "a@x.io", "old")
	require.NoError(t, err)
	require.NoError(t, s.SetResetToken(ctx, u.ID, "h", now.Add(time.Minute)))

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ConsumeResetToken(ctx, "h", now, "new"); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestStorage_UpdatePasswordHashClearsResetToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	s := memory.New()

	u, err := s.CreateUser(ctx, "a@x.io", "old")
	require.NoError(t, err)
	require.NoError(t, s.SetResetToken(ctx, u.ID, "h", now.Add(time.Minute)))
	require.NoError(t, s.UpdatePasswordHash(ctx, u.ID, "changed"))

	_, err = s.ConsumeResetToken(ctx, "h", now, "new")
	assert.ErrorIs(t, err, recovery.ErrResetTokenInvalid)
}

func TestStorage_CatalogAndOwners(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.New()

	store, err := s.CreateStore(ctx, 7, "Shop")
	require.NoError(t, err)

	_, err = s.CreateProduct(ctx, catalog.NewProduct{StoreID: 99, Name: "Mug"})
	assert.ErrorIs(t, err, catalog.ErrStoreNotFound)

	product, err := s.CreateProduct(ctx, catalog.NewProduct{StoreID: store.ID, Name: "Mug", PriceCents: 500})
	require.NoError(t, err)

	owner, err := s.StoreOwner(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), owner)

	owner, err = s.ProductOwner(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), owner)

	_, err = s.StoreOwner(ctx, 99)
	assert.ErrorIs(t, err, guard.ErrResourceNotFound)

	price := int64(750)
	updated, err := s.UpdateProduct(ctx, product.ID, catalog.ProductPatch{PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(750), updated.PriceCents)
	assert.Equal(t, "Mug", updated.Name)

	require.NoError(t, s.DeleteProduct(ctx, product.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, product.ID), catalog.ErrProductNotFound)

	_, err = s.ProductOwner(ctx, product.ID)
	assert.ErrorIs(t, err, guard.ErrResourceNotFound)
}
