package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// String length limits
const (
	MaxIDLength       = 128
	MaxNameLength     = 256
	MaxIconLength     = 2048
	MaxCategoryLength = 64
	MaxURLLength      = 8192
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// CategoryPattern allows lowercase letters, numbers, and hyphens
	CategoryPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Profile names and tab titles come from the renderer and are echoed back to
// it, so markup is stripped rather than escaped.
var namePolicy = bluemonday.StrictPolicy()

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateName validates a name field
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidateIcon validates an icon reference (emoji, asset name, or URL)
func ValidateIcon(icon string) error {
	return ValidateString(icon, "icon", 0, MaxIconLength, false)
}

// ValidateCategory validates a category field
func ValidateCategory(category string, required bool) error {
	if err := ValidateString(category, "category", 0, MaxCategoryLength, required); err != nil {
		return err
	}

	if category != "" && !CategoryPattern.MatchString(category) {
		return fmt.Errorf("category must contain only lowercase letters, numbers, and hyphens")
	}

	return nil
}

// ValidateURL checks that raw is an absolute URL or an about: page
func ValidateURL(raw, fieldName string, required bool) error {
	if err := ValidateString(raw, fieldName, 1, MaxURLLength, required); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", fieldName, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%s must include a scheme", fieldName)
	}
	if u.Opaque == "" && u.Host == "" && u.Scheme != "file" {
		return fmt.Errorf("%s must include a host", fieldName)
	}

	return nil
}

// SanitizeName strips markup and surrounding whitespace from display text
func SanitizeName(name string) string {
	return strings.TrimSpace(namePolicy.Sanitize(name))
}
