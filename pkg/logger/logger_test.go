package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/pkg/logger"
)

type ctxKey struct{}

func TestNewWithExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithAttr(slog.String("service", "marketplace")),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			v, ok := ctx.Value(ctxKey{}).(string)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.RequestID(v), true
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "product deleted", logger.UserID(42), logger.ProductID(7), logger.Error(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "product deleted", rec["msg"])
	assert.Equal(t, "marketplace", rec["service"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.EqualValues(t, 42, rec["user_id"])
	assert.EqualValues(t, 7, rec["product_id"])
	assert.Equal(t, "boom", rec["error"])
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production is json at info", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment("production", "api"))

		log.Debug("hidden")
		log.Info("visible")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "visible", rec["msg"])
		assert.Equal(t, "production", rec["env"])
		assert.Equal(t, "api", rec["service"])
	})

	t.Run("unknown falls back to development", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment("", "api"))

		log.Debug("shown")
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestWithFormatPanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.Reason(nil))
	assert.Equal(t, "not owner", logger.Reason(errors.New("not owner")).Value.String())
	assert.Equal(t, "operation", logger.Operation("products.delete").Key)
	assert.Equal(t, int64(3), logger.StoreID(3).Value.Int64())
}
