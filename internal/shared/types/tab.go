package types

import "time"

// TabState represents tab lifecycle states
type TabState string

const (
	TabLoading TabState = "loading"
	TabLoaded  TabState = "loaded"
	TabClosed  TabState = "closed"
)

// Tab is a page open inside exactly one profile. ProfileID never changes
// after creation.
type Tab struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	State     TabState  `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
