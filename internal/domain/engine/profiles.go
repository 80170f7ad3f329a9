package engine

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// CreateProfile registers a new profile
func (e *Engine) CreateProfile(name, icon string) *types.Profile {
	p := e.profiles.Create(name, icon)
	e.refreshGauges()
	return p
}

// GetProfile returns one profile
func (e *Engine) GetProfile(profileID string) (*types.Profile, error) {
	return e.profiles.Get(profileID)
}

// ListProfiles returns every profile in creation order
func (e *Engine) ListProfiles() []*types.Profile {
	return e.profiles.GetAll()
}

// ActiveProfile returns the foreground profile or nil
func (e *Engine) ActiveProfile() *types.Profile {
	return e.profiles.Active()
}

// SwitchActive makes profileID the foreground profile
func (e *Engine) SwitchActive(profileID string) (*types.Profile, error) {
	return e.profiles.SwitchActive(profileID)
}

// DeleteProfile removes a profile, cancels its rotation and closes its tabs.
// Once the profile is out of the store every other operation on it fails
// with ErrNotFound; the rotation is then cancelled synchronously, so no tick
// for it can fire after DeleteProfile returns.
func (e *Engine) DeleteProfile(profileID string) error {
	owned, err := e.profiles.Remove(profileID)
	if err != nil {
		return err
	}

	e.scheduler.Stop(profileID)
	closed := e.tabs.CloseOwned(owned)

	ev := types.NewEvent(types.EventProfileDeleted)
	ev.ProfileID = profileID
	e.bus.Publish(ev)

	e.refreshGauges()
	e.logger.Info("profile deleted",
		zap.String("profile_id", profileID),
		zap.Int("tabs_closed", closed))
	return nil
}
