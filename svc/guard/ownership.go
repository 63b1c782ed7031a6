package guard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/marketplace/pkg/binder"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/svc/auth"
)

const (
	storeRefField  = "store_id"
	productRefPath = "id"

	maxRefBodySize = binder.MaxJSONSize
)

// OwnerResolver looks up resource owners. Missing resources yield
// ErrResourceNotFound.
type OwnerResolver interface {
	StoreOwner(ctx context.Context, storeID int64) (int64, error)
	// ProductOwner returns the owner of the product's parent store.
	ProductOwner(ctx context.Context, productID int64) (int64, error)
}

type ownershipConfig struct {
	pathParam func(r *http.Request, name string) string
	log       *slog.Logger
}

// OwnershipOption configures Ownership.
type OwnershipOption func(*ownershipConfig)

// WithPathParam replaces chi.URLParam as the source of path parameters.
func WithPathParam(fn func(r *http.Request, name string) string) OwnershipOption {
	return func(c *ownershipConfig) {
		if fn != nil {
			c.pathParam = fn
		}
	}
}

// WithOwnershipLogger sets the logger used for storage failures.
func WithOwnershipLogger(l *slog.Logger) OwnershipOption {
	return func(c *ownershipConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Ownership returns the guard that checks the caller owns the target of an
// Owned operation. Creates are checked against the store named by "store_id"
// in the JSON or form body (or the query string when the body has none),
// everything else against the product named by the "id" path parameter.
// The authorized store of a create is published through StoreRef.
func Ownership(resolver OwnerResolver, opts ...OwnershipOption) Guard {
	cfg := &ownershipConfig{
		pathParam: chi.URLParam,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(req *Request) Decision {
		if !req.Operation.OwnershipChecked {
			return Allow()
		}

		principal, ok := req.Principal()
		if !ok {
			return Deny(auth.ErrUnauthenticated)
		}

		ctx := req.HTTP.Context()

		var (
			ownerID int64
			storeID int64
			err     error
		)
		if req.Operation.Action == ActionCreate {
			var refErr error
			storeID, refErr = storeRef(req.HTTP)
			if refErr != nil {
				return Deny(refErr)
			}
			ownerID, err = resolver.StoreOwner(ctx, storeID)
		} else {
			productID, parsed := parseRef(cfg.pathParam(req.HTTP, productRefPath))
			if !parsed {
				return Deny(ErrOwnershipRefMissing)
			}
			ownerID, err = resolver.ProductOwner(ctx, productID)
		}

		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return Deny(ErrResourceNotFound)
			}
			cfg.log.ErrorContext(ctx, "failed to resolve resource owner",
				logger.Operation(req.Operation.Name),
				logger.Error(err),
				logger.Component("guard"),
			)
			return Deny(fmt.Errorf("guard: failed to resolve owner: %w", err))
		}

		if ownerID != principal.ID {
			return Deny(ErrNotOwner)
		}
		if storeID != 0 {
			req.HTTP = req.HTTP.WithContext(withStoreRef(ctx, storeID))
		}
		return Allow()
	}
}

// storeRef reads the store id from a JSON or form body, keeping the body
// readable for the handler, and falls back to the query string.
func storeRef(r *http.Request) (int64, error) {
	switch binder.MediaType(r) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		// Parsed form values stay cached on the request for the form binder.
		if id, ok := parseRef(r.PostFormValue(storeRefField)); ok {
			return id, nil
		}
	}

	if binder.IsJSON(r) && r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRefBodySize+1))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return 0, fmt.Errorf("guard: failed to read request body: %w", err)
		}

		// Struct decoding matches keys the way the JSON binder does.
		var payload struct {
			StoreID json.RawMessage `json:"store_id"`
		}
		if len(body) <= maxRefBodySize && json.Unmarshal(body, &payload) == nil && len(payload.StoreID) > 0 {
			if id, ok := parseRawRef(payload.StoreID); ok {
				return id, nil
			}
		}
	}

	if id, ok := parseRef(r.URL.Query().Get(storeRefField)); ok {
		return id, nil
	}
	return 0, ErrOwnershipRefMissing
}

// parseRawRef accepts both 12 and "12".
func parseRawRef(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseRef(n.String())
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseRef(s)
	}
	return 0, false
}

func parseRef(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
