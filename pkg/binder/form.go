package binder

import (
	"fmt"
	"net/http"
)

// MaxMultipartMemory is the in-memory budget for multipart parsing.
const MaxMultipartMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies
// into fields tagged `form:"name"`. Only body values are used; query values
// are left to Query.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var values map[string][]string

		switch {
		case hasMediaType(r, "application/x-www-form-urlencoded"):
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm
		case hasMediaType(r, "multipart/form-data"):
			if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
		default:
			return ErrNotApplicable
		}

		return bindValues(v, "form", values, false, ErrFailedToParseForm)
	}
}
