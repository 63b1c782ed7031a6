package guard

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/marketplace/svc/auth"
)

var (
	ErrOwnershipRefMissing = errors.New("guard: ownership reference missing")
	ErrResourceNotFound    = errors.New("guard: resource not found")
	ErrNotOwner            = errors.New("guard: caller does not own the resource")

	// ErrOwnershipRefConflict means the handler's input names a different
	// store than the one the request was authorized against.
	ErrOwnershipRefConflict = errors.New("guard: ownership reference conflicts with the authorized one")
)

// StatusCode maps a deny reason to an HTTP status. Used by the default deny handler.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOwnershipRefMissing), errors.Is(err, ErrNotOwner), errors.Is(err, ErrOwnershipRefConflict):
		return http.StatusForbidden
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
