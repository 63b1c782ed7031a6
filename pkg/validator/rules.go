package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Required fails on empty or whitespace-only strings.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// MinLen fails when value has fewer than min characters.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters long", min)},
	}
}

// MaxLen fails when value has more than max characters.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters long", max)},
	}
}

// ValidEmail fails unless value is a bare address with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			_, domain, ok := strings.Cut(value, "@")
			return ok && strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// Positive fails for ids and amounts that are zero or negative.
func Positive[T ~int | ~int32 | ~int64 | ~float64](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value > 0 },
		Error: ValidationError{Field: field, Message: "must be greater than zero"},
	}
}

// NonNegative fails for negative values.
func NonNegative[T ~int | ~int32 | ~int64 | ~float64](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value >= 0 },
		Error: ValidationError{Field: field, Message: "must not be negative"},
	}
}

// When applies rule only if cond is true.
func When(cond bool, rule Rule) Rule {
	return Rule{
		Check: func() bool { return !cond || rule.Check() },
		Error: rule.Error,
	}
}

// MaxBytes fails when value is longer than max bytes. bcrypt only accepts 72-byte inputs.
func MaxBytes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d bytes long", max)},
	}
}
