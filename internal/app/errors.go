package app

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/modules/account"
	"github.com/dmitrymomot/marketplace/modules/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
)

var ErrUnknownStorageDriver = errors.New("app: unknown storage driver")

// ErrorMappings is the complete translation table for API errors, guard
// denials included.
func ErrorMappings() []handler.ErrorMapping {
	mappings := []handler.ErrorMapping{
		handler.Map(guard.ErrOwnershipRefMissing, handler.HTTPError{Code: http.StatusForbidden, Key: "ownership_ref_missing"}),
		handler.Map(guard.ErrNotOwner, handler.HTTPError{Code: http.StatusForbidden, Key: "not_owner"}),
		handler.Map(guard.ErrOwnershipRefConflict, handler.HTTPError{Code: http.StatusForbidden, Key: "ownership_ref_conflict"}),
		handler.Map(guard.ErrResourceNotFound, handler.ErrNotFound),
	}
	mappings = append(mappings, account.ErrorMappings()...)
	mappings = append(mappings, catalog.ErrorMappings()...)
	return mappings
}
