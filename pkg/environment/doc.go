// Package environment carries the deployment environment (development, staging,
// production) through request contexts.
//
//	router.Use(environment.Middleware(environment.Parse(cfg.Env)))
//
//	if environment.IsProduction(r.Context()) {
//		// hide internal error details
//	}
package environment
