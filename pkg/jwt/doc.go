// Package jwt issues and verifies the bearer tokens used by the HTTP API.
//
// Tokens are HS256-signed JSON Web Tokens produced with github.com/golang-jwt/jwt/v5.
// Each token carries the subject's numeric id (as the "sub" claim), the subject's
// email, the issue time and an expiry. Verification is purely computational: no
// storage is consulted, so a token stays valid until it expires even if the
// account changes in the meantime.
//
// # Usage
//
//	import "github.com/dmitrymomot/marketplace/pkg/jwt"
//
//	svc, err := jwt.New(jwt.Config{Secret: "super-secret", TTL: 24 * time.Hour})
//	if err != nil {
//		// handle error
//	}
//
//	token, err := svc.Issue(42, "owner@example.com")
//
//	claims, err := svc.Verify(token)
//	switch {
//	case errors.Is(err, jwt.ErrTokenExpired):
//		// ask the client to log in again
//	case errors.Is(err, jwt.ErrTokenInvalid):
//		// forged, malformed or signed with another key
//	}
//
// # Configuration
//
// Config is populated from the environment (JWT_SECRET, JWT_TTL, JWT_ISSUER) by
// pkg/config. The Service copies the values at construction and never reads
// process-wide state afterwards.
//
// # Transport helpers
//
// BearerTokenExtractor pulls the raw token out of the Authorization header and
// matches TokenExtractorFunc, the hook guard.WithTokenExtractor accepts.
// SetToken / GetToken keep the token on a context.
package jwt
