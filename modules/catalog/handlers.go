package catalog

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
)

type IDRequest struct {
	ID int64 `path:"id"`
}

type CreateStoreRequest struct {
	Name string `json:"name" form:"name"`
}

type CreateProductRequest struct {
	StoreID     int64  `json:"store_id" form:"store_id" query:"store_id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	PriceCents  int64  `json:"price_cents" form:"price_cents"`
}

type UpdateProductRequest struct {
	ID          int64   `path:"id" json:"-"`
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	PriceCents  *int64  `json:"price_cents" form:"price_cents"`
}

func (m *module) createStore(ctx handler.Context, req CreateStoreRequest) handler.Response {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	store, err := m.catalog.CreateStore(ctx, principal.ID, req.Name)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(store, handler.WithJSONStatus(http.StatusCreated))
}

func (m *module) getStore(ctx handler.Context, req IDRequest) handler.Response {
	store, err := m.catalog.GetStore(ctx, req.ID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(store)
}

// createProduct writes into the store the ownership guard authorized. A bound
// store_id naming any other store is rejected.
func (m *module) createProduct(ctx handler.Context, req CreateProductRequest) handler.Response {
	storeID, ok := guard.StoreRef(ctx)
	if !ok {
		return handler.Fail(guard.ErrOwnershipRefMissing)
	}
	if req.StoreID != storeID {
		return handler.Fail(guard.ErrOwnershipRefConflict)
	}

	product, err := m.catalog.CreateProduct(ctx, catalog.NewProduct{
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(product, handler.WithJSONStatus(http.StatusCreated))
}

func (m *module) getProduct(ctx handler.Context, req IDRequest) handler.Response {
	product, err := m.catalog.GetProduct(ctx, req.ID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(product)
}

func (m *module) updateProduct(ctx handler.Context, req UpdateProductRequest) handler.Response {
	product, err := m.catalog.UpdateProduct(ctx, req.ID, catalog.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(product)
}

func (m *module) deleteProduct(ctx handler.Context, req IDRequest) handler.Response {
	if err := m.catalog.DeleteProduct(ctx, req.ID); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}
