package binder

import "errors"

var (
	ErrNotApplicable        = errors.New("binder: not applicable to this request")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrFailedToParseJSON    = errors.New("binder: failed to parse JSON body")
	ErrFailedToParseForm    = errors.New("binder: failed to parse form data")
	ErrFailedToParseQuery   = errors.New("binder: failed to parse query parameters")
	ErrFailedToParsePath    = errors.New("binder: failed to parse path parameters")
)
