package types

// Category classifies presets for filtered selection.
type Category string

const (
	CategoryDesktop Category = "desktop"
	CategoryMobile  Category = "mobile"
	CategoryTablet  Category = "tablet"
	CategoryBot     Category = "bot"
)

// Preset is a named, reusable User-Agent string.
type Preset struct {
	ID       string   `json:"id" yaml:"id" toml:"id"`
	Name     string   `json:"name,omitempty" yaml:"name" toml:"name"`
	Value    string   `json:"value" yaml:"value" toml:"value"`
	Category Category `json:"category" yaml:"category" toml:"category"`
	Custom   bool     `json:"custom" yaml:"-" toml:"-"`
}

// Unknown marks a field the parser could not determine.
const Unknown = "unknown"

// ParsedUserAgent is a derived view of a User-Agent string. Never stored.
type ParsedUserAgent struct {
	BrowserName    string `json:"browser_name"`
	BrowserVersion string `json:"browser_version"`
	Platform       string `json:"platform"`
	IsMobile       bool   `json:"is_mobile"`
}

// UnknownUserAgent is the result for input that could not be parsed at all.
func UnknownUserAgent() ParsedUserAgent {
	return ParsedUserAgent{
		BrowserName:    Unknown,
		BrowserVersion: Unknown,
		Platform:       Unknown,
	}
}
