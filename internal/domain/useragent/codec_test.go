package useragent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaEdgeWindows   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
	uaOperaWindows  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 OPR/106.0.0.0"
	uaFirefoxMac    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:120.0) Gecko/20100101 Firefox/120.0"
	uaSafariMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15"
	uaSafariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Mobile/15E148 Safari/604.1"
	uaChromeIOS     = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/129.0.6668.69 Mobile/15E148 Safari/604.1"
	uaChromeAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Mobile Safari/537.36"
	uaSamsung       = "Mozilla/5.0 (Linux; Android 14; SAMSUNG SM-S921B) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/24.0 Chrome/128.0.0.0 Mobile Safari/537.36"
	uaChromeLinux   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36"
	uaChromeOS      = "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaGooglebot     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
	uaCurl          = "curl/8.4.0"
)

func TestCodecValidate(t *testing.T) {
	codec := NewCodec(0)

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"chrome desktop", uaChromeWindows, true},
		{"bot", uaGooglebot, true},
		{"bare product token", uaCurl, true},
		{"empty", "", false},
		{"no product token", "not a real UA", false},
		{"slash without version", "Mozilla/ (Windows)", false},
		{"prose with slash", "foo and/or bar", false},
		{"version without digit", "Mozilla/five", false},
		{"product not leading", "(Windows) Mozilla/5.0", false},
		{"leading space", " Mozilla/5.0", false},
		{"newline", "Mozilla/5.0\nInjected: header", false},
		{"carriage return", "Mozilla/5.0\r", false},
		{"nul byte", "Mozilla/5.0\x00", false},
		{"tab", "Mozilla/5.0\t(X11)", false},
		{"invalid utf8", "Mozilla/5.0 \xff", false},
		{"too long", "Mozilla/5.0 " + strings.Repeat("a", DefaultMaxLength), false},
		{"exactly max length", "Mozilla/5.0 " + strings.Repeat("a", DefaultMaxLength-len("Mozilla/5.0 ")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, codec.Validate(tt.value))
			// Validation is pure
			assert.Equal(t, tt.valid, codec.Validate(tt.value))
		})
	}
}

func TestCodecCustomMaxLength(t *testing.T) {
	codec := NewCodec(16)

	assert.Equal(t, 16, codec.MaxLength())
	assert.True(t, codec.Validate("Mozilla/5.0"))
	assert.False(t, codec.Validate(uaChromeWindows))
}

func TestCodecParse(t *testing.T) {
	codec := NewCodec(0)

	tests := []struct {
		name     string
		value    string
		expected types.ParsedUserAgent
	}{
		{"chrome windows", uaChromeWindows, types.ParsedUserAgent{BrowserName: "Chrome", BrowserVersion: "120.0.0.0", Platform: "Windows"}},
		{"edge before chrome", uaEdgeWindows, types.ParsedUserAgent{BrowserName: "Edge", BrowserVersion: "120.0.0.0", Platform: "Windows"}},
		{"opera before chrome", uaOperaWindows, types.ParsedUserAgent{BrowserName: "Opera", BrowserVersion: "106.0.0.0", Platform: "Windows"}},
		{"firefox mac", uaFirefoxMac, types.ParsedUserAgent{BrowserName: "Firefox", BrowserVersion: "120.0", Platform: "macOS"}},
		{"safari mac", uaSafariMac, types.ParsedUserAgent{BrowserName: "Safari", BrowserVersion: "17.1", Platform: "macOS"}},
		{"safari iphone", uaSafariIPhone, types.ParsedUserAgent{BrowserName: "Safari", BrowserVersion: "17.6", Platform: "iOS", IsMobile: true}},
		{"chrome ios", uaChromeIOS, types.ParsedUserAgent{BrowserName: "Chrome", BrowserVersion: "129.0.6668.69", Platform: "iOS", IsMobile: true}},
		{"chrome android", uaChromeAndroid, types.ParsedUserAgent{BrowserName: "Chrome", BrowserVersion: "128.0.0.0", Platform: "Android", IsMobile: true}},
		{"samsung before chrome", uaSamsung, types.ParsedUserAgent{BrowserName: "Samsung Internet", BrowserVersion: "24.0", Platform: "Android", IsMobile: true}},
		{"chrome linux", uaChromeLinux, types.ParsedUserAgent{BrowserName: "Chrome", BrowserVersion: "128.0.0.0", Platform: "Linux"}},
		{"chrome os", uaChromeOS, types.ParsedUserAgent{BrowserName: "Chrome", BrowserVersion: "120.0.0.0", Platform: "Chrome OS"}},
		{"googlebot", uaGooglebot, types.ParsedUserAgent{BrowserName: "Googlebot", BrowserVersion: "2.1", Platform: types.Unknown}},
		{"curl", uaCurl, types.ParsedUserAgent{BrowserName: "curl", BrowserVersion: "8.4.0", Platform: types.Unknown}},
		{"unknown product", "MyAgent/1.0", types.ParsedUserAgent{BrowserName: types.Unknown, BrowserVersion: types.Unknown, Platform: types.Unknown}},
		{"safari without version", "Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 Safari/605.1.15", types.ParsedUserAgent{BrowserName: "Safari", BrowserVersion: types.Unknown, Platform: "macOS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := codec.Parse(tt.value)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestCodecParseMalformedIsTotal(t *testing.T) {
	codec := NewCodec(0)

	inputs := []string{
		"",
		"not a real UA",
		strings.Repeat("Mozilla/5.0 ", 10_000),
		"\x00\x01\x02",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			parsed, ok := codec.Parse(in)
			assert.False(t, ok)
			assert.Equal(t, types.UnknownUserAgent(), parsed)
		})
	}
}

func TestCodecParseIsPure(t *testing.T) {
	codec := NewCodec(0)

	first, _ := codec.Parse(uaSamsung)
	second, _ := codec.Parse(uaSamsung)
	assert.Equal(t, first, second)
}
