// Package ws streams engine notifications to the host over WebSocket.
//
// Each connection gets its own engine subscription and its own delivery
// breaker. Consecutive write failures open the breaker, and the connection
// is dropped rather than left to back up the subscription buffer.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Sent once after the upgrade, carries the subscriber id
//   - pong: Reply to ping
//   - profile_changed, profile_deleted, tab_updated, rotation_warning: engine events
//   - error: Unknown client message
//
// Example Usage:
//
//	handler := ws.NewHandler(eng, logger).WithMetrics(metrics)
//	router.GET("/stream", handler.HandleConnection)
package ws
