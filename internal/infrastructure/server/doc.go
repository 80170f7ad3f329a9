// Package server wires the engine, the HTTP bridge and the notification
// stream into one http.Server.
//
// Middleware order: recovery, tracing, metrics, CORS, then rate limiting
// when enabled. /metrics and /stream sit on the same router as the bridge.
package server
