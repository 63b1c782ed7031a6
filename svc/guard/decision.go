package guard

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/svc/auth"
)

// Decision is the verdict of a single guard.
type Decision struct {
	Allowed bool
	Reason  error
}

// Allow lets the request proceed to the next guard.
func Allow() Decision { return Decision{Allowed: true} }

// Deny stops the request. A nil reason is reported as ErrNotOwner.
func Deny(reason error) Decision {
	if reason == nil {
		reason = ErrNotOwner
	}
	return Decision{Reason: reason}
}

// Request is the state shared by guards while a chain runs.
type Request struct {
	HTTP      *http.Request
	Operation Operation

	principal *auth.Principal
}

// Principal returns the principal attached by the authentication guard.
func (r *Request) Principal() (auth.Principal, bool) {
	if r.principal == nil {
		return auth.Principal{}, false
	}
	return *r.principal, true
}

// SetPrincipal attaches p. The dispatcher moves it into the request context
// once every guard has allowed the request.
func (r *Request) SetPrincipal(p auth.Principal) {
	r.principal = &p
}

// Guard inspects a request and decides whether it may proceed.
type Guard func(req *Request) Decision
