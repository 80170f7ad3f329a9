/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the profile
engine, tracking bridge requests, engine events, and live object counts.

# Features

- HTTP request metrics (latency, throughput, status)
- Engine event counters mirrored from the statistics aggregator
- Gauges for active profiles, open tabs, active rotations, stream subscribers
- Dropped notification counter
- Uptime

# Usage

	// Create metrics collector on its own registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Expose the registry
	router.GET("/metrics", gin.WrapH(monitoring.Handler(reg)))
*/
package monitoring
