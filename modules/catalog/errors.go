package catalog

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/svc/catalog"
)

// ErrorMappings translates catalog errors to HTTP responses.
func ErrorMappings() []handler.ErrorMapping {
	return []handler.ErrorMapping{
		handler.Map(catalog.ErrStoreNotFound, handler.HTTPError{Code: http.StatusNotFound, Key: "store_not_found"}),
		handler.Map(catalog.ErrProductNotFound, handler.HTTPError{Code: http.StatusNotFound, Key: "product_not_found"}),
	}
}
