package types

import (
	"slices"
	"time"
)

// Profile is an isolated browsing identity.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`

	// CurrentUserAgent is nil until the first successful apply
	CurrentUserAgent *string `json:"current_user_agent"`

	// Tabs holds the ids of open tabs owned by this profile, in creation order
	Tabs []string `json:"tabs"`

	Rotation *RotationState `json:"rotation,omitempty"`
}

// Clone returns a deep copy safe to hand outside the owning lock.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	cp := *p
	cp.Tabs = slices.Clone(p.Tabs)
	if cp.Tabs == nil {
		cp.Tabs = []string{}
	}
	if p.CurrentUserAgent != nil {
		ua := *p.CurrentUserAgent
		cp.CurrentUserAgent = &ua
	}
	if p.Rotation != nil {
		rs := *p.Rotation
		cp.Rotation = &rs
	}
	return &cp
}

// HasTab reports whether tabID is in the profile's open tab set.
func (p *Profile) HasTab(tabID string) bool {
	return slices.Contains(p.Tabs, tabID)
}
