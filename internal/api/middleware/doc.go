// Package middleware provides the HTTP middleware in front of the host bridge.
//
// Middleware stack includes:
//   - CORS: lets the host renderer origin call the bridge
//   - RateLimit: per-client token bucket limiting with idle client eviction
//   - GlobalRateLimit: a single bucket shared by every client
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
