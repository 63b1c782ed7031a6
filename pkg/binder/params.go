package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Fields that already hold a non-zero value are left untouched.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), true, ErrFailedToParseQuery)
	}
}

// ParamFunc reads a named path parameter, e.g. chi.URLParam.
type ParamFunc func(r *http.Request, name string) string

// Path binds router path parameters into fields tagged `path:"name"`.
func Path(param ParamFunc) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		names, err := taggedNames(v, "path", ErrFailedToParsePath)
		if err != nil {
			return err
		}

		values := make(map[string][]string, len(names))
		for _, name := range names {
			if value := param(r, name); value != "" {
				values[name] = []string{value}
			}
		}

		return bindValues(v, "path", values, false, ErrFailedToParsePath)
	}
}
