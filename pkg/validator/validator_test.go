package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("email", "owner@example.com"),
			validator.ValidEmail("email", "owner@example.com"),
			validator.MinLen("password", "secret1", 6),
		)
		require.NoError(t, err)
	})

	t.Run("failures are aggregated", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("email", "  "),
			validator.ValidEmail("email", "  "),
			validator.MinLen("password", "abc", 6),
		)
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		var ve validator.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve, 3)
		assert.True(t, ve.Has("password"))
		assert.Equal(t, []string{"field is required", "must be a valid email address"}, ve.Fields()["email"])
		assert.Contains(t, err.Error(), "password: must be at least 6 characters long")
	})

	t.Run("wrapped validation error is detected", func(t *testing.T) {
		err := fmt.Errorf("bind: %w", validator.Apply(validator.Required("name", "")))
		assert.True(t, validator.IsValidationError(err))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@example.com", "first.last+tag@sub.example.org"}
	invalid := []string{"", "plain", "a@localhost", "a@.com", "a@example.", "Name <a@example.com>"}

	for _, v := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}
	for _, v := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}
}

func TestLengthRulesCountRunes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MinLen("password", "пароль", 6)))
	assert.Error(t, validator.Apply(validator.MaxLen("name", "пароль", 5)))
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.Positive("store_id", int64(1))))
	assert.Error(t, validator.Apply(validator.Positive("store_id", int64(0))))
	assert.NoError(t, validator.Apply(validator.NonNegative("price", 0.0)))
	assert.Error(t, validator.Apply(validator.NonNegative("price", -1.5)))
}

func TestWhen(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.When(false, validator.Required("name", ""))))
	assert.Error(t, validator.Apply(validator.When(true, validator.Required("name", ""))))
}
