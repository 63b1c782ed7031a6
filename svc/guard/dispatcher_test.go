package guard_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/guard"
)

func TestDispatcher_RunsGuardsInOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(name string, d guard.Decision) guard.Guard {
		return func(*guard.Request) guard.Decision {
			calls = append(calls, name)
			return d
		}
	}

	var denied error
	d := guard.NewDispatcher(
		[]guard.Guard{
			record("first", guard.Allow()),
			record("second", guard.Deny(guard.ErrNotOwner)),
			record("third", guard.Allow()),
		},
		guard.WithDenyHandler(func(w http.ResponseWriter, _ *http.Request, reason error) {
			denied = reason
			w.WriteHeader(http.StatusForbidden)
		}),
	)

	nextCalled := false
	h := d.HandleFunc(guard.Protected("test", guard.ActionUpdate), func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, nextCalled)
	assert.ErrorIs(t, denied, guard.ErrNotOwner)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDispatcher_AttachesPrincipal(t *testing.T) {
	t.Parallel()

	setter := func(req *guard.Request) guard.Decision {
		req.SetPrincipal(auth.Principal{ID: 4, Email: "o@x.io"})
		return guard.Allow()
	}
	reader := func(req *guard.Request) guard.Decision {
		if _, ok := req.Principal(); !ok {
			return guard.Deny(auth.ErrUnauthenticated)
		}
		return guard.Allow()
	}

	d := guard.NewDispatcher([]guard.Guard{setter, reader})

	var got auth.Principal
	h := d.HandleFunc(guard.Protected("test", guard.ActionRead), func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = p
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, auth.Principal{ID: 4, Email: "o@x.io"}, got)
}

func TestDispatcher_DefaultDenyHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason error
		code   int
	}{
		{auth.ErrUnauthenticated, http.StatusUnauthorized},
		{guard.ErrOwnershipRefMissing, http.StatusForbidden},
		{guard.ErrNotOwner, http.StatusForbidden},
		{guard.ErrResourceNotFound, http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		d := guard.NewDispatcher([]guard.Guard{func(*guard.Request) guard.Decision {
			return guard.Deny(tt.reason)
		}})
		h := d.HandleFunc(guard.Protected("test", guard.ActionRead), func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tt.code, rec.Code, tt.reason.Error())
	}
}

func TestDeny_NilReason(t *testing.T) {
	t.Parallel()

	d := guard.Deny(nil)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, guard.ErrNotOwner)
}
