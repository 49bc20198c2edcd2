// Package observability builds the gateway's zap loggers.
//
// Loggers are created from the LOG_LEVEL and LOG_FORMAT settings and can be
// wrapped in a context-aware Logger that stamps every entry with the request
// ID chi assigned to the current request.
package observability
