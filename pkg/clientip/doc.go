// Package clientip resolves the originating client address of an HTTP request
// and keeps it on the request context for logging.
//
// Forwarding headers are consulted in order (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) before falling back to RemoteAddr. Only syntactically valid
// addresses are accepted.
package clientip
