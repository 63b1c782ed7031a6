// Package validator builds request validation from small declarative rules.
//
// Each rule constructor returns a Rule pairing a check with the error reported
// when it fails. Apply evaluates every rule and aggregates failures into
// ValidationErrors, which implements error and converts to a field -> messages
// map for API responses.
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 6),
//	)
package validator
