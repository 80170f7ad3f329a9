// Package http exposes the engine to the host bridge over HTTP.
//
// Every operation has a typed request and response. Requests are validated
// here, before they reach the engine; engine errors are mapped to status
// codes by respondError and returned as types.ErrorResponse.
//
// Endpoints:
//   - Profiles: /profiles, /profiles/active, /profiles/:id, /profiles/:id/activate
//   - User agents: /profiles/:id/user-agent{,/preset,/random}, /user-agents/{validate,parse}
//   - Rotation: /profiles/:id/rotation, /rotations
//   - Tabs: /profiles/:id/tabs, /tabs/:id, /tabs/:id/navigate, /tabs/:id/loaded
//   - Presets: /presets, /presets/:id
//   - Observability: /health, /statistics
//
// Example Usage:
//
//	handlers := http.NewHandlers(eng, metrics, logger)
//	handlers.Register(router)
package http
