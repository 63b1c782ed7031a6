// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value R already populated by
// the configured binders, and returns a Response that knows how to render
// itself:
//
//	create := handler.HandlerFunc[CreateProductRequest](func(ctx handler.Context, req CreateProductRequest) handler.Response {
//		product, err := svc.Create(ctx, req.StoreID, req.Name)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(product, handler.WithJSONStatus(http.StatusCreated))
//	})
//
//	r.Post("/products", handler.Wrap(create,
//		handler.WithBinders[CreateProductRequest](binder.JSON(), binder.Form(), binder.Query()),
//		handler.WithErrorHandler[CreateProductRequest](errorHandler),
//	))
//
// Errors returned through Fail, and binding errors, reach the route's
// ErrorHandler. NewErrorHandler translates them to HTTP statuses through
// HTTPError, validator.ValidationErrors and an ErrorMapping table.
package handler
