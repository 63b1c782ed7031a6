package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// MaxJSONSize caps the accepted JSON body.
const MaxJSONSize = 1 << 20

// JSON binds an application/json or +json body. Unknown fields and trailing
// data are rejected.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !IsJSON(r) {
			return ErrNotApplicable
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, MaxJSONSize+1))
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		if dec.InputOffset() > MaxJSONSize {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrFailedToParseJSON, MaxJSONSize)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		return nil
	}
}

// MediaType returns the request's Content-Type without parameters, or "" when
// the header is missing or malformed.
func MediaType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// IsJSON reports whether the body is application/json or a +json subtype.
func IsJSON(r *http.Request) bool {
	mt := MediaType(r)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func hasMediaType(r *http.Request, want string) bool {
	return MediaType(r) == want
}
