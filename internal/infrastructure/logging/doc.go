// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Engine components receive a named child logger (logger.Component("rotation"))
// so every line carries the component that emitted it.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Engine starting", zap.String("port", "8400"))
//	logger.Component("rotation").Warn("Tick failed", zap.Error(err))
package logging
