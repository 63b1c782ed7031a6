// Package logger builds *slog.Logger instances with per-environment defaults and
// request-scoped attributes pulled from context.Context.
//
// New takes functional options (WithEnvironment, WithLevel, WithFormat,
// WithOutput, WithAttr, WithContextExtractors). Context extractors run on every
// record through LogHandlerDecorator, so values such as the request id stored by
// pkg/requestid show up on log lines emitted deep inside services.
//
// Attribute helpers (Error, UserID, StoreID, ProductID, Operation, ...) keep key
// names consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithContextExtractors(requestid.LoggerExtractor, clientip.LoggerExtractor),
//	)
//	log.InfoContext(ctx, "product deleted", logger.UserID(42), logger.ProductID(7))
package logger
