package components

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dtg01100/video-browser/internal/models"
)

// MaxSourceNameLen bounds source names in the add/edit form.
const MaxSourceNameLen = 50

// ValidateSourceName requires a non-blank name of at most MaxSourceNameLen runes.
func ValidateSourceName(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(value)) > MaxSourceNameLen {
		return fmt.Errorf("name must be %d characters or less", MaxSourceNameLen)
	}
	return nil
}

// ValidateSourceURL requires an absolute http or https URL with a host.
func ValidateSourceURL(value string) error {
	if value == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q (expected an http:// or https:// address)", value)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", value)
	}
	return nil
}

// ValidateSettingValue checks a value typed into the edit form against the
// setting's type.
func ValidateSettingValue(t models.SettingType, value string) error {
	switch t {
	case models.SettingNumber:
		return models.ValidateNumber(value)
	case models.SettingText:
		return nil
	default:
		return fmt.Errorf("settings of type %q are not edited as text", t)
	}
}

// GetPathSuggestions returns the current value followed by the static
// fallbacks, without duplicates or trailing slashes.
func GetPathSuggestions(current string, staticFallbacks []string) []string {
	var suggestions []string
	seen := make(map[string]bool)

	for _, candidate := range append([]string{current}, staticFallbacks...) {
		if candidate == "" {
			continue
		}
		normalized := strings.TrimSuffix(candidate, "/")
		if normalized == "" {
			normalized = "/"
		}
		if !seen[normalized] {
			seen[normalized] = true
			suggestions = append(suggestions, normalized)
		}
	}

	return suggestions
}
