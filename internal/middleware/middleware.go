// Package middleware holds the echo middleware stack: request ids, the
// request scoped logger, New Relic tracing, rate limiting and the global
// error handler.
package middleware
