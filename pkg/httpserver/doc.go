// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness probe handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT/SIGTERM,
// after in-flight requests have drained or ShutdownTimeout elapsed.
package httpserver
