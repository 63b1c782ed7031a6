package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/handler"
	"github.com/dmitrymomot/marketplace/pkg/binder"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/validator"
)

type createRequest struct {
	StoreID int64  `json:"store_id" form:"store_id" query:"store_id"`
	Name    string `json:"name" form:"name"`
}

var errNotOwner = errors.New("not owner")

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrapBindsAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req createRequest) handler.Response {
		return handler.JSON(req, handler.WithJSONStatus(http.StatusCreated))
	}, handler.WithBinders[createRequest](binder.JSON(), binder.Form(), binder.Query()))

	t.Run("json body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"store_id":2,"name":"Mug"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, r)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"store_id":2,"name":"Mug"}}`, rec.Body.String())
	})

	t.Run("form body with query fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products?store_id=5", strings.NewReader("name=Lamp"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h(rec, r)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"store_id":5,"name":"Lamp"}}`, rec.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"store_id":`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode(t, rec).Error.Code)
	})
}

func TestWrapNilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "http error", err: fmt.Errorf("wrap: %w", handler.ErrForbidden), status: http.StatusForbidden, code: "forbidden"},
		{name: "validation", err: validator.Apply(validator.Required("name", "")), status: http.StatusUnprocessableEntity, code: "validation_error"},
		{name: "unknown", err: errors.New("db exploded"), status: http.StatusInternalServerError, code: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "db exploded")
		})
	}
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	eh := handler.NewErrorHandler(
		logger.New(logger.WithOutput(&logs)),
		handler.Map(errNotOwner, handler.HTTPError{Code: http.StatusForbidden, Key: "not_owner"}),
	)

	rec := httptest.NewRecorder()
	eh.Write(rec, httptest.NewRequest(http.MethodDelete, "/products/1", nil), fmt.Errorf("product 1: %w", errNotOwner))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_owner", body.Error.Code)
	assert.Equal(t, "Forbidden", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "product 1")
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"status":403`)

	validation := validator.Apply(validator.MinLen("password", "abc", 6))
	rec = httptest.NewRecorder()
	eh.Write(rec, httptest.NewRequest(http.MethodPost, "/users", nil), validation)
	body = decode(t, rec)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"must be at least 6 characters long"}, body.Error.Details["password"])
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestFailGoesThroughErrorHandler(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(),
		handler.Map(errNotOwner, handler.HTTPError{Code: http.StatusForbidden, Key: "not_owner"}),
	)
	h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Fail(errNotOwner)
	}, handler.WithErrorHandler[struct{}](eh))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/products/1", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "not_owner", decode(t, rec).Error.Code)
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs))
	mw := handler.Recoverer(log, handler.NewErrorHandler(log))

	t.Run("panic renders json 500", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_server_error", decode(t, rec).Error.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
		assert.Contains(t, logs.String(), "panic recovered")
		assert.Contains(t, logs.String(), `"panic":"boom"`)
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})

	t.Run("no panic passes through", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
