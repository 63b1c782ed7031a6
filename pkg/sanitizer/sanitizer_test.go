package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/marketplace/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	got := sanitizer.Apply("  Hand  made\tmug \x00 ", sanitizer.StripControl, sanitizer.NormalizeWhitespace)
	assert.Equal(t, "Hand made mug", got)
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"owner@example.com": "o****@example.com",
		"a@example.com":     "a@example.com",
		"ñandu@example.com": "ñ****@example.com",
		"not-an-email":      "n**********l",
		"@example.com":      "@**********m",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.MaskEmail(in), in)
	}
}

func TestMaskString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab****yz", sanitizer.MaskString("abcdefyz", 2))
	assert.Equal(t, "****", sanitizer.MaskString("abcd", 2))
	assert.Equal(t, "***", sanitizer.MaskString("abc", -1))
}
