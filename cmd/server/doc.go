// Package main is the entry point for the profile engine service.
//
// The service keeps isolated browsing profiles, their tabs and their
// User-Agent identities, and exposes them to the host shell over a local
// HTTP bridge plus a WebSocket notification stream.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8400 -presets /etc/profile-engine/presets.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
