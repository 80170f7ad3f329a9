// Package types provides shared data structures for the profile engine.
//
// This package defines the core types passed between engine components and
// across the host bridge, so every layer agrees on one shape per concept.
//
// Core Types:
//   - Profile: Isolated browsing identity with its own tabs and User-Agent
//   - Tab: A page open inside exactly one profile
//   - Preset: Named User-Agent string, built-in or custom
//   - ParsedUserAgent: Derived view of a User-Agent string
//   - RotationState: Scheduled User-Agent rotation for one profile
//   - Statistics: Process-lifetime engine counters
//   - Event: Outbound notification published to the host
//
// Errors:
//   - ErrNotFound, ErrInvalidUserAgent, ErrInvalidInterval, ErrNoPresetsAvailable
//
// Example Usage:
//
//	profile := &types.Profile{
//	    ID:   string(id.NewProfileID()),
//	    Name: "Work",
//	    Tabs: []string{},
//	}
package types
