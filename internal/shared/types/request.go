package types

// CreateProfileRequest creates a new profile
type CreateProfileRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// ApplyUserAgentRequest sets a profile's User-Agent to a raw value
type ApplyUserAgentRequest struct {
	Value string `json:"value"`
}

// ApplyPresetRequest sets a profile's User-Agent from a preset
type ApplyPresetRequest struct {
	PresetID string `json:"preset_id" binding:"required"`
}

// ApplyRandomRequest sets a profile's User-Agent from a random preset
type ApplyRandomRequest struct {
	Category Category `json:"category,omitempty"`
}

// StartRotationRequest starts or replaces a profile's rotation
type StartRotationRequest struct {
	IntervalMs int64    `json:"interval_ms"`
	Category   Category `json:"category,omitempty"`
}

// CreateTabRequest opens a tab in a profile
type CreateTabRequest struct {
	URL string `json:"url,omitempty"`
}

// NavigateRequest points a tab at a new location
type NavigateRequest struct {
	URL string `json:"url" binding:"required"`
}

// TabLoadedRequest is the render layer's load confirmation
type TabLoadedRequest struct {
	Title string `json:"title,omitempty"`
}

// AddPresetRequest registers a custom preset
type AddPresetRequest struct {
	Value    string   `json:"value"`
	Category Category `json:"category" binding:"required"`
	Name     string   `json:"name,omitempty"`
}

// UserAgentRequest carries a raw User-Agent for validate/parse
type UserAgentRequest struct {
	Value string `json:"value"`
}

// ValidateResponse is the result of a validate call
type ValidateResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// ParseResponse is the result of a parse call
type ParseResponse struct {
	Value  string          `json:"value"`
	Parsed ParsedUserAgent `json:"parsed"`
}

// ErrorResponse is the body of every failed bridge call
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WSMessage represents a WebSocket message sent by a stream client
type WSMessage struct {
	Type string `json:"type"`
}
