// Package guard authorizes HTTP requests before they reach a handler.
//
// Every route is registered with an Operation descriptor. The Dispatcher runs
// an explicit, ordered list of guards against the request; each guard returns
// a Decision, and the first Deny short-circuits the request through the deny
// handler without invoking the route handler.
//
// The standard chain is:
//
//	d := guard.NewDispatcher(
//		[]guard.Guard{
//			guard.Authenticate(tokens),
//			guard.Ownership(owners),
//		},
//		guard.WithDenyHandler(errorHandler.Write),
//	)
//
//	r.Method(http.MethodPost, "/products", d.Handle(guard.Owned("product.create", guard.ActionCreate), h))
//
// Authenticate must precede every guard that reads the principal. Public
// operations are allowed by Authenticate before any token is extracted, and
// handlers of public operations must not assume a principal exists.
//
// Verdicts are never cached: every request re-runs the whole chain.
package guard
