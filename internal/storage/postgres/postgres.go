// Package postgres implements the marketplace storage interfaces on PostgreSQL
// through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/marketplace/pkg/pg"
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

// Storage runs queries against a pgx pool.
type Storage struct {
	pool *pgxpool.Pool
	db   pg.DBTX
}

// New creates a Storage on top of pool.
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool, db: pool}
}

const userColumns = `id, email, password_hash, created_at`

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail implements auth.UserReader.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres: get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID implements auth.UserReader.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres: get user by id: %w", err)
	}
	return u, nil
}

// CreateUser implements auth.Storage.
func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		email, passwordHash))
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, auth.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("postgres: create user: %w", err)
	}
	return u, nil
}

// UpdatePasswordHash implements auth.Storage.
func (s *Storage) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users
		    SET password_hash = $2, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		  WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres: update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// GetAccountByEmail implements recovery.Storage.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*recovery.Account, error) {
	var a recovery.Account
	err := s.db.QueryRow(ctx, `SELECT id, email FROM users WHERE email = $1`, email).Scan(&a.ID, &a.Email)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, recovery.ErrAccountNotFound
		}
		return nil, fmt.Errorf("postgres: get account by email: %w", err)
	}
	return &a, nil
}

// SetResetToken implements recovery.Storage.
func (s *Storage) SetResetToken(ctx context.Context, accountID int64, tokenHash string, expiresAt time.Time) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = now() WHERE id = $1`,
		accountID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("postgres: set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return recovery.ErrAccountNotFound
	}
	return nil
}

// ConsumeResetToken implements recovery.Storage. The match and the clear are a
// single statement, so a token can be consumed at most once.
func (s *Storage) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*recovery.Account, error) {
	var a recovery.Account
	err := s.db.QueryRow(ctx,
		`UPDATE users
		    SET password_hash = $1, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		  WHERE reset_token_hash = $2 AND reset_token_expires_at > $3
		RETURNING id, email`,
		passwordHash, tokenHash, now).Scan(&a.ID, &a.Email)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, recovery.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("postgres: consume reset token: %w", err)
	}
	return &a, nil
}

// CreateStore implements catalog.Storage.
func (s *Storage) CreateStore(ctx context.Context, ownerID int64, name string) (*catalog.Store, error) {
	var st catalog.Store
	err := s.db.QueryRow(ctx,
		`INSERT INTO stores (owner_id, name) VALUES ($1, $2) RETURNING id, owner_id, name, created_at`,
		ownerID, name).Scan(&st.ID, &st.OwnerID, &st.Name, &st.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: create store: %w", err)
	}
	return &st, nil
}

// GetStore implements catalog.Storage.
func (s *Storage) GetStore(ctx context.Context, id int64) (*catalog.Store, error) {
	var st catalog.Store
	err := s.db.QueryRow(ctx,
		`SELECT id, owner_id, name, created_at FROM stores WHERE id = $1`, id).
		Scan(&st.ID, &st.OwnerID, &st.Name, &st.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, catalog.ErrStoreNotFound
		}
		return nil, fmt.Errorf("postgres: get store: %w", err)
	}
	return &st, nil
}

const productColumns = `id, store_id, name, description, price_cents, created_at, updated_at`

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	if err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct implements catalog.Storage. The parent store row is share-locked
// for the insert so a concurrent store deletion cannot slip in between.
func (s *Storage) CreateProduct(ctx context.Context, np catalog.NewProduct) (*catalog.Product, error) {
	var product *catalog.Product
	err := pg.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		var storeID int64
		if err := tx.QueryRow(ctx, `SELECT id FROM stores WHERE id = $1 FOR SHARE`, np.StoreID).Scan(&storeID); err != nil {
			if pg.IsNotFoundError(err) {
				return catalog.ErrStoreNotFound
			}
			return err
		}

		p, err := scanProduct(tx.QueryRow(ctx,
			`INSERT INTO products (store_id, name, description, price_cents)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+productColumns,
			np.StoreID, np.Name, np.Description, np.PriceCents))
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrStoreNotFound) || pg.IsForeignKeyViolationError(err) {
			return nil, catalog.ErrStoreNotFound
		}
		return nil, fmt.Errorf("postgres: create product: %w", err)
	}
	return product, nil
}

// GetProduct implements catalog.Storage.
func (s *Storage) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("postgres: get product: %w", err)
	}
	return p, nil
}

// UpdateProduct implements catalog.Storage.
func (s *Storage) UpdateProduct(ctx context.Context, id int64, patch catalog.ProductPatch) (*catalog.Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx,
		`UPDATE products
		    SET name        = COALESCE($2, name),
		        description = COALESCE($3, description),
		        price_cents = COALESCE($4, price_cents),
		        updated_at  = now()
		  WHERE id = $1
		RETURNING `+productColumns,
		id, patch.Name, patch.Description, patch.PriceCents))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("postgres: update product: %w", err)
	}
	return p, nil
}

// DeleteProduct implements catalog.Storage.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// StoreOwner implements guard.OwnerResolver.
func (s *Storage) StoreOwner(ctx context.Context, storeID int64) (int64, error) {
	var ownerID int64
	err := s.db.QueryRow(ctx, `SELECT owner_id FROM stores WHERE id = $1`, storeID).Scan(&ownerID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, guard.ErrResourceNotFound
		}
		return 0, fmt.Errorf("postgres: store owner: %w", err)
	}
	return ownerID, nil
}

// ProductOwner implements guard.OwnerResolver.
func (s *Storage) ProductOwner(ctx context.Context, productID int64) (int64, error) {
	var ownerID int64
	err := s.db.QueryRow(ctx,
		`SELECT s.owner_id FROM products p JOIN stores s ON s.id = p.store_id WHERE p.id = $1`,
		productID).Scan(&ownerID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, guard.ErrResourceNotFound
		}
		return 0, fmt.Errorf("postgres: product owner: %w", err)
	}
	return ownerID, nil
}
