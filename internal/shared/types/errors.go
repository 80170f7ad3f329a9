package types

import "errors"

// Error kinds returned by engine operations. Callers classify with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidUserAgent   = errors.New("invalid user agent")
	ErrInvalidInterval    = errors.New("invalid rotation interval")
	ErrNoPresetsAvailable = errors.New("no presets available")
)

// ErrorKind returns a stable snake_case name for an engine error, or
// "internal" when err is not one of the known kinds.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidUserAgent):
		return "invalid_user_agent"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrNoPresetsAvailable):
		return "no_presets_available"
	default:
		return "internal"
	}
}
