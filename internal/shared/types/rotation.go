package types

import (
	"math"
	"time"
)

// MaxInterval is the longest rotation period; larger intervals saturate to it
const MaxInterval = time.Duration(math.MaxInt64)

// RotationState describes the scheduled rotation of one profile.
type RotationState struct {
	ProfileID  string    `json:"profile_id"`
	IntervalMs int64     `json:"interval_ms"`
	Category   Category  `json:"category,omitempty"`
	Active     bool      `json:"active"`
	StartedAt  time.Time `json:"started_at"`
	Ticks      uint64    `json:"ticks"`

	// Generation distinguishes successive rotations of the same profile
	Generation uint64 `json:"generation"`
}

// Interval returns the rotation period as a duration, saturating at
// MaxInterval instead of overflowing.
func (r RotationState) Interval() time.Duration {
	if r.IntervalMs > int64(MaxInterval/time.Millisecond) {
		return MaxInterval
	}
	return time.Duration(r.IntervalMs) * time.Millisecond
}
