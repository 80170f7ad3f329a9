package engine

import "github.com/GriffinCanCode/profile-engine/internal/shared/types"

// StartRotation arms or replaces the profile's rotation
func (e *Engine) StartRotation(profileID string, intervalMs int64, category types.Category) (*types.RotationState, error) {
	rs, err := e.scheduler.Start(profileID, intervalMs, category)
	if err == nil {
		e.refreshGauges()
	}
	return rs, err
}

// StopRotation cancels the profile's rotation. It is a no-op when none is
// active and fails only for an unknown profile.
func (e *Engine) StopRotation(profileID string) error {
	if _, err := e.profiles.Get(profileID); err != nil {
		return err
	}
	e.scheduler.Stop(profileID)
	e.refreshGauges()
	return nil
}

// Rotations returns every active rotation
func (e *Engine) Rotations() []types.RotationState {
	return e.scheduler.Active()
}
