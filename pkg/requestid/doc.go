// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// generates a time-ordered UUID (v7), stores it in the request context and echoes
// it in the response. LoggerExtractor adds it to every log record written with
// the request context.
package requestid
