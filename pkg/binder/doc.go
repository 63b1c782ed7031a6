// Package binder decodes HTTP requests into typed structs.
//
// Each binder handles one source and one struct tag:
//
//	JSON()            request body (application/json), `json:"..."`
//	Form()            urlencoded or multipart body, `form:"..."`
//	Query()           URL query string, `query:"..."`
//	Path(paramFunc)   router path parameters, `path:"..."`
//
// A body binder returns ErrNotApplicable when the request carries a different
// media type so that several binders can be chained and the first matching one
// wins. Query only fills fields that are still zero, which makes it usable as a
// fallback after a body binder.
package binder
