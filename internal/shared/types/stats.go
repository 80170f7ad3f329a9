package types

// StatEvent identifies a counted engine event.
type StatEvent string

const (
	StatApply             StatEvent = "apply"
	StatRotationTick      StatEvent = "rotation_tick"
	StatValidationFailure StatEvent = "validation_failure"
	StatParseFailure      StatEvent = "parse_failure"
)

// Statistics holds process-lifetime counters
type Statistics struct {
	ApplyCount             uint64 `json:"apply_count"`
	RotationTickCount      uint64 `json:"rotation_tick_count"`
	ValidationFailureCount uint64 `json:"validation_failure_count"`
	ParseFailureCount      uint64 `json:"parse_failure_count"`
}
