// Package catalog serves stores and products.
package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/pkg/binder"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
)

// RouterOptions holds the collaborators of the catalog routes.
type RouterOptions struct {
	Catalog    *catalog.Service
	Dispatcher *guard.Dispatcher
	// ErrorHandler renders failed requests. Defaults to NewErrorHandler(Logger, ErrorMappings()...).
	ErrorHandler handler.ErrorHandler
	Logger       *slog.Logger
}

type module struct {
	catalog *catalog.Service
}

// Routes registers the catalog routes. Product mutations are ownership
// checked: creates against the store named by store_id, updates and deletes
// against the product's store.
//
//	POST   /stores          authenticated, the caller becomes the owner
//	GET    /stores/{id}     public
//	POST   /products        owner of store_id
//	GET    /products/{id}   public
//	PATCH  /products/{id}   owner
//	DELETE /products/{id}   owner
func Routes(opts RouterOptions) func(r chi.Router) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	eh := opts.ErrorHandler
	if eh == nil {
		eh = handler.NewErrorHandler(log, ErrorMappings()...)
	}

	m := &module{catalog: opts.Catalog}
	d := opts.Dispatcher
	path := binder.Path(chi.URLParam)

	return func(r chi.Router) {
		r.Method(http.MethodPost, "/stores", d.Handle(guard.Protected("stores.create", guard.ActionCreate),
			handler.Wrap(m.createStore,
				handler.WithBinders[CreateStoreRequest](binder.JSON(), binder.Form()),
				handler.WithErrorHandler[CreateStoreRequest](eh),
			)))

		r.Method(http.MethodGet, "/stores/{id}", d.Handle(guard.Public("stores.get"),
			handler.Wrap(m.getStore,
				handler.WithBinders[IDRequest](path),
				handler.WithErrorHandler[IDRequest](eh),
			)))

		r.Method(http.MethodPost, "/products", d.Handle(guard.Owned("products.create", guard.ActionCreate),
			handler.Wrap(m.createProduct,
				handler.WithBinders[CreateProductRequest](binder.JSON(), binder.Form(), binder.Query()),
				handler.WithErrorHandler[CreateProductRequest](eh),
			)))

		r.Method(http.MethodGet, "/products/{id}", d.Handle(guard.Public("products.get"),
			handler.Wrap(m.getProduct,
				handler.WithBinders[IDRequest](path),
				handler.WithErrorHandler[IDRequest](eh),
			)))

		r.Method(http.MethodPatch, "/products/{id}", d.Handle(guard.Owned("products.update", guard.ActionUpdate),
			handler.Wrap(m.updateProduct,
				handler.WithBinders[UpdateProductRequest](path, binder.JSON(), binder.Form()),
				handler.WithErrorHandler[UpdateProductRequest](eh),
			)))

		r.Method(http.MethodDelete, "/products/{id}", d.Handle(guard.Owned("products.delete", guard.ActionDelete),
			handler.Wrap(m.deleteProduct,
				handler.WithBinders[IDRequest](path),
				handler.WithErrorHandler[IDRequest](eh),
			)))
	}
}
