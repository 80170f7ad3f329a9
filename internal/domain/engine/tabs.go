package engine

import "github.com/GriffinCanCode/profile-engine/internal/shared/types"

// CreateTab opens a tab in profileID; an empty url opens the blank page
func (e *Engine) CreateTab(profileID, url string) (*types.Tab, error) {
	t, err := e.tabs.CreateTab(profileID, url)
	if err == nil {
		e.refreshGauges()
	}
	return t, err
}

// GetTab returns one tab, including closed ones
func (e *Engine) GetTab(tabID string) (*types.Tab, error) {
	return e.tabs.Get(tabID)
}

// CloseTab closes a tab; closing a closed tab is a no-op
func (e *Engine) CloseTab(tabID string) error {
	err := e.tabs.CloseTab(tabID)
	if err == nil {
		e.refreshGauges()
	}
	return err
}

// Navigate points a tab at url
func (e *Engine) Navigate(tabID, url string) (*types.Tab, error) {
	return e.tabs.Navigate(tabID, url)
}

// ConfirmLoaded marks a tab loaded on behalf of the render layer
func (e *Engine) ConfirmLoaded(tabID, title string) (*types.Tab, error) {
	return e.tabs.ConfirmLoaded(tabID, title)
}

// TabsForProfile returns the profile's open tabs in creation order
func (e *Engine) TabsForProfile(profileID string) ([]*types.Tab, error) {
	if _, err := e.profiles.Get(profileID); err != nil {
		return nil, err
	}
	return e.tabs.TabsForProfile(profileID), nil
}
