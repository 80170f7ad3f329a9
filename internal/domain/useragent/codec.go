package useragent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// DefaultMaxLength bounds accepted User-Agent strings.
const DefaultMaxLength = 512

// productToken matches the leading Product/Version pair such as
// "Mozilla/5.0". The version must start with a digit.
var productToken = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*/[0-9][0-9A-Za-z._+-]*`)

var mobileTokens = []string{
	"Mobile", "Android", "iPhone", "iPad", "iPod",
	"Windows Phone", "Opera Mini", "IEMobile", "BlackBerry",
}

type platformMatcher struct {
	markers  []string
	platform string
}

// Checked in order. Android and iOS strings also carry Linux and Mac OS X.
var platformMatchers = []platformMatcher{
	{[]string{"Windows Phone"}, "Windows Phone"},
	{[]string{"Android"}, "Android"},
	{[]string{"iPhone", "iPad", "iPod"}, "iOS"},
	{[]string{"CrOS"}, "Chrome OS"},
	{[]string{"Windows"}, "Windows"},
	{[]string{"Mac OS X", "Macintosh"}, "macOS"},
	{[]string{"Linux", "X11"}, "Linux"},
}

type browserMatcher struct {
	name string
	re   *regexp.Regexp
}

// Most specific first: Edge, Opera and Samsung strings all embed Chrome and Safari.
var browserMatchers = []browserMatcher{
	{"Googlebot", regexp.MustCompile(`Googlebot/([\w.]+)`)},
	{"Bingbot", regexp.MustCompile(`bingbot/([\w.]+)`)},
	{"curl", regexp.MustCompile(`curl/([\w.]+)`)},
	{"Wget", regexp.MustCompile(`Wget/([\w.]+)`)},
	{"Edge", regexp.MustCompile(`Edg(?:e|A|iOS)?/([\w.]+)`)},
	{"Opera", regexp.MustCompile(`(?:OPR|Opera)/([\w.]+)`)},
	{"Samsung Internet", regexp.MustCompile(`SamsungBrowser/([\w.]+)`)},
	{"Firefox", regexp.MustCompile(`(?:Firefox|FxiOS)/([\w.]+)`)},
	{"Chrome", regexp.MustCompile(`(?:Chrome|CriOS)/([\w.]+)`)},
}

var safariVersion = regexp.MustCompile(`Version/([\w.]+)`)

// Codec validates and parses User-Agent strings.
type Codec struct {
	maxLength int
}

// NewCodec creates a codec accepting strings up to maxLength bytes.
// A non-positive maxLength selects DefaultMaxLength.
func NewCodec(maxLength int) *Codec {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Codec{maxLength: maxLength}
}

// MaxLength returns the longest accepted value in bytes
func (c *Codec) MaxLength() int {
	return c.maxLength
}

// Validate reports whether value is a structurally valid User-Agent: non-empty,
// bounded, valid UTF-8, free of control characters, starting with a
// Product/Version token.
func (c *Codec) Validate(value string) bool {
	if value == "" || len(value) > c.maxLength {
		return false
	}
	if !utf8.ValidString(value) {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return productToken.MatchString(value)
}

// Parse extracts browser, platform and mobile flag from value. It never
// fails: fields it cannot determine are types.Unknown. ok is false when value
// is malformed, in which case every field is unknown.
func (c *Codec) Parse(value string) (parsed types.ParsedUserAgent, ok bool) {
	if !c.Validate(value) {
		return types.UnknownUserAgent(), false
	}

	parsed = types.UnknownUserAgent()
	parsed.IsMobile = containsAny(value, mobileTokens)

	for _, m := range platformMatchers {
		if containsAny(value, m.markers) {
			parsed.Platform = m.platform
			break
		}
	}

	parsed.BrowserName, parsed.BrowserVersion = detectBrowser(value)
	return parsed, true
}

func detectBrowser(value string) (name, version string) {
	for _, m := range browserMatchers {
		if match := m.re.FindStringSubmatch(value); match != nil {
			return m.name, match[1]
		}
	}

	if strings.Contains(value, "Safari/") {
		if match := safariVersion.FindStringSubmatch(value); match != nil {
			return "Safari", match[1]
		}
		return "Safari", types.Unknown
	}

	return types.Unknown, types.Unknown
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
