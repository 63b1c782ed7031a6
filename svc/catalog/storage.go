package catalog

import "context"

// Storage persists stores and products. Lookups of missing rows return
// ErrStoreNotFound or ErrProductNotFound.
type Storage interface {
	CreateStore(ctx context.Context, ownerID int64, name string) (*Store, error)
	GetStore(ctx context.Context, id int64) (*Store, error)

	// CreateProduct returns ErrStoreNotFound when the store does not exist.
	CreateProduct(ctx context.Context, p NewProduct) (*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
