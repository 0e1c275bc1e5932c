// Package models defines the entities shown by the video browser.
// Entities are value records: once generated they are never mutated, and
// re-rendering replaces views instead of editing them.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Category is the genre of a video.
type Category string

const (
	CategoryMovie       Category = "Movie"
	CategorySeries      Category = "Series"
	CategoryVariety     Category = "Variety"
	CategoryAnime       Category = "Anime"
	CategoryDocumentary Category = "Documentary"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMovie,
	CategorySeries,
	CategoryVariety,
	CategoryAnime,
	CategoryDocumentary,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Video is a playable catalog entry.
type Video struct {
	ID        string   `json:"id" yaml:"id" mapstructure:"id"`
	Title     string   `json:"title" yaml:"title" mapstructure:"title"`
	Category  Category `json:"category" yaml:"category" mapstructure:"category"`
	Views     int      `json:"views" yaml:"views" mapstructure:"views"`
	Duration  string   `json:"duration" yaml:"duration" mapstructure:"duration"` // M:SS
	Thumbnail string   `json:"thumbnail" yaml:"thumbnail" mapstructure:"thumbnail"`
}

// Source is a configured video source.
type Source struct {
	ID        string    `json:"id" yaml:"id" mapstructure:"id"`
	Name      string    `json:"name" yaml:"name" mapstructure:"name"`
	URL       string    `json:"url" yaml:"url" mapstructure:"url"`
	IsDefault bool      `json:"is_default" yaml:"is_default" mapstructure:"is_default"`
	IsActive  bool      `json:"is_active" yaml:"is_active" mapstructure:"is_active"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" mapstructure:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at" mapstructure:"updated_at"`
}

// SettingType selects the control used to edit a setting.
type SettingType string

const (
	SettingBoolean SettingType = "boolean"
	SettingSelect  SettingType = "select"
	SettingText    SettingType = "text"
	SettingNumber  SettingType = "number"
)

// SettingItem is one entry of the settings catalog.
// Value holds a bool for boolean settings, a string for select and text
// settings, and an int or a numeric string for number settings.
// Options is set only for select settings.
type SettingItem struct {
	Key     string      `json:"key" yaml:"key" mapstructure:"key"`
	Label   string      `json:"label" yaml:"label" mapstructure:"label"`
	Type    SettingType `json:"type" yaml:"type" mapstructure:"type"`
	Value   any         `json:"value" yaml:"value" mapstructure:"value"`
	Options []string    `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options,omitempty"`
}

// Catalog groups the three collections the browser displays.
type Catalog struct {
	Videos   []Video       `json:"videos" yaml:"videos"`
	Sources  []Source      `json:"sources" yaml:"sources"`
	Settings []SettingItem `json:"settings" yaml:"settings"`
}

// Bool returns the value of a boolean setting. Other types report false.
func (s SettingItem) Bool() bool {
	b, ok := s.Value.(bool)
	return ok && b
}

// StringValue renders the value the way an input box shows it.
func (s SettingItem) StringValue() string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Validate checks that the value lies in the domain of the setting type.
func (s SettingItem) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("setting key is required")
	}

	switch s.Type {
	case SettingBoolean:
		if _, ok := s.Value.(bool); !ok {
			return fmt.Errorf("setting %q: boolean value required, got %T", s.Key, s.Value)
		}
		if len(s.Options) > 0 {
			return fmt.Errorf("setting %q: options are only allowed on select settings", s.Key)
		}
	case SettingSelect:
		if len(s.Options) == 0 {
			return fmt.Errorf("setting %q: select requires options", s.Key)
		}
		v, ok := s.Value.(string)
		if !ok {
			return fmt.Errorf("setting %q: select value must be a string, got %T", s.Key, s.Value)
		}
		for _, opt := range s.Options {
			if opt == v {
				return nil
			}
		}
		return fmt.Errorf("setting %q: value %q is not one of %v", s.Key, v, s.Options)
	case SettingNumber:
		if len(s.Options) > 0 {
			return fmt.Errorf("setting %q: options are only allowed on select settings", s.Key)
		}
		return ValidateNumber(s.StringValue())
	case SettingText:
		if _, ok := s.Value.(string); !ok {
			return fmt.Errorf("setting %q: text value must be a string, got %T", s.Key, s.Value)
		}
		if len(s.Options) > 0 {
			return fmt.Errorf("setting %q: options are only allowed on select settings", s.Key)
		}
	default:
		return fmt.Errorf("setting %q: unknown type %q", s.Key, s.Type)
	}

	return nil
}

// ValidateNumber accepts the strings a number setting may hold.
func ValidateNumber(value string) error {
	if value == "" {
		return fmt.Errorf("number cannot be empty")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number: %q", value)
	}
	return nil
}

// Validate checks the shape of a video.
func (v Video) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("video id is required")
	}
	if !v.Category.Valid() {
		return fmt.Errorf("video %s: unknown category %q", v.ID, v.Category)
	}
	if v.Views < 0 {
		return fmt.Errorf("video %s: views must be non-negative", v.ID)
	}
	if !durationPattern(v.Duration) {
		return fmt.Errorf("video %s: duration %q is not M:SS", v.ID, v.Duration)
	}
	return nil
}

func durationPattern(d string) bool {
	m, s, ok := strings.Cut(d, ":")
	if !ok || m == "" || len(s) != 2 {
		return false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 {
		return false
	}
	secs, err := strconv.Atoi(s)
	return err == nil && secs >= 0 && secs < 60
}

// DefaultSources counts the sources flagged as default.
func DefaultSources(sources []Source) int {
	n := 0
	for _, s := range sources {
		if s.IsDefault {
			n++
		}
	}
	return n
}
