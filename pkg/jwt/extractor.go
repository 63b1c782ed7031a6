package jwt

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc pulls a raw token out of an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>" headers (RFC 6750).
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrTokenInvalid
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", ErrTokenInvalid
	}

	return token, nil
}
