// Package config provides configuration management for the video browser.
// It uses Viper for configuration file handling and supports YAML format.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/layout"
	"github.com/dtg01100/video-browser/internal/logging"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dtg01100/video-browser/internal/notify"
	"github.com/dtg01100/video-browser/pkg/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName     = "video-browser"
	fileName    = "config.yaml"
	logFileName = "video-browser.log"
	envPrefix   = "VIDEO_BROWSER"
)

// Config represents the application configuration.
type Config struct {
	Version       string             `mapstructure:"version" yaml:"version" json:"version"`
	Layout        LayoutConfig       `mapstructure:"layout" yaml:"layout" json:"layout"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications" json:"notifications"`
	Catalog       CatalogConfig      `mapstructure:"catalog" yaml:"catalog" json:"catalog"`
	Log           LogConfig          `mapstructure:"log" yaml:"log" json:"log"`
}

// LayoutConfig holds the responsive layout constants.
type LayoutConfig struct {
	// Breakpoint is the widest viewport, in logical pixels, shown compact.
	Breakpoint int `mapstructure:"breakpoint" yaml:"breakpoint" json:"breakpoint"`
	// SidebarWidth is the sidebar width in terminal cells.
	SidebarWidth int `mapstructure:"sidebar_width" yaml:"sidebar_width" json:"sidebar_width"`
	// CellWidth converts terminal columns to logical pixels.
	CellWidth int `mapstructure:"cell_width" yaml:"cell_width" json:"cell_width"`
}

// NotificationConfig holds the toast timeline.
type NotificationConfig struct {
	VisibleMS  int `mapstructure:"visible_ms" yaml:"visible_ms" json:"visible_ms"`
	ExitMS     int `mapstructure:"exit_ms" yaml:"exit_ms" json:"exit_ms"`
	MaxVisible int `mapstructure:"max_visible" yaml:"max_visible" json:"max_visible"`
}

// CatalogConfig holds the size of the generated catalog.
type CatalogConfig struct {
	Videos  int `mapstructure:"videos" yaml:"videos" json:"videos"`
	Sources int `mapstructure:"sources" yaml:"sources" json:"sources"`
}

// LogConfig selects the log destination and verbosity.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file" json:"file"`
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// ExportData is the layout of an exported catalog file.
type ExportData struct {
	Version  string               `json:"version" yaml:"version"`
	Videos   []models.Video       `json:"videos" yaml:"videos"`
	Sources  []models.Source      `json:"sources" yaml:"sources"`
	Settings []models.SettingItem `json:"settings" yaml:"settings"`
	Exported string               `json:"exported" yaml:"exported"`
}

// Load reads the configuration from the default config file location.
// If the config file doesn't exist, it returns a new Config with defaults.
// Environment variables prefixed VIDEO_BROWSER_ override file values.
func Load() (*Config, error) {
	v := viper.New()

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, apperrors.Wrap(apperrors.ErrConfigUnreadable, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfigUnreadable, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the default config file location.
// It writes to a temp file first, then renames, keeping a backup of the
// previous file.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := utils.EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, fileName)
	backupPath := configPath + ".bak"

	if _, err := os.Stat(configPath); err == nil {
		if err := createBackup(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("version", c.Version)
	v.Set("layout.breakpoint", c.Layout.Breakpoint)
	v.Set("layout.sidebar_width", c.Layout.SidebarWidth)
	v.Set("layout.cell_width", c.Layout.CellWidth)
	v.Set("notifications.visible_ms", c.Notifications.VisibleMS)
	v.Set("notifications.exit_ms", c.Notifications.ExitMS)
	v.Set("notifications.max_visible", c.Notifications.MaxVisible)
	v.Set("catalog.videos", c.Catalog.Videos)
	v.Set("catalog.sources", c.Catalog.Sources)
	v.Set("log.file", c.Log.File)
	v.Set("log.level", c.Log.Level)

	tempPath := configPath + ".tmp.yaml"

	if err := v.WriteConfigAs(tempPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Validate checks every value against its allowed range.
func (c *Config) Validate() error {
	switch {
	case c.Layout.Breakpoint <= 0:
		return apperrors.NewConfigInvalidError("layout.breakpoint", c.Layout.Breakpoint, "must be positive")
	case c.Layout.SidebarWidth < 0:
		return apperrors.NewConfigInvalidError("layout.sidebar_width", c.Layout.SidebarWidth, "must not be negative")
	case c.Layout.CellWidth <= 0:
		return apperrors.NewConfigInvalidError("layout.cell_width", c.Layout.CellWidth, "must be positive")
	case c.Notifications.VisibleMS <= 0:
		return apperrors.NewConfigInvalidError("notifications.visible_ms", c.Notifications.VisibleMS, "must be positive")
	case c.Notifications.ExitMS <= 0:
		return apperrors.NewConfigInvalidError("notifications.exit_ms", c.Notifications.ExitMS, "must be positive")
	case c.Notifications.MaxVisible < 0:
		return apperrors.NewConfigInvalidError("notifications.max_visible", c.Notifications.MaxVisible, "must not be negative (0 means unlimited)")
	case c.Catalog.Videos < 0:
		return apperrors.NewConfigInvalidError("catalog.videos", c.Catalog.Videos, "must not be negative")
	case c.Catalog.Sources < 0:
		return apperrors.NewConfigInvalidError("catalog.sources", c.Catalog.Sources, "must not be negative")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return apperrors.NewConfigInvalidError("log.level", c.Log.Level, err.Error())
	}

	return nil
}

// LayoutConfig returns the layout resolver constants.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		Breakpoint:   c.Layout.Breakpoint,
		SidebarWidth: c.Layout.SidebarWidth,
	}
}

// NotifyConfig returns the notification timeline.
func (c *Config) NotifyConfig() notify.Config {
	return notify.Config{
		Visible:    time.Duration(c.Notifications.VisibleMS) * time.Millisecond,
		Exit:       time.Duration(c.Notifications.ExitMS) * time.Millisecond,
		MaxVisible: c.Notifications.MaxVisible,
	}
}

// ViewportWidth converts terminal columns to logical pixels.
func (c *Config) ViewportWidth(columns int) int {
	return columns * c.Layout.CellWidth
}

// LogFile returns the log file path, defaulting to the config directory.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return utils.ExpandHome(c.Log.File), nil
	}
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// Path returns the path of the config file.
func Path() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Default returns a Config holding every default value.
func Default() *Config {
	return newConfigWithDefaults()
}

// createBackup copies the existing config file next to itself.
// Only the most recent backup is kept.
func createBackup(configPath, backupPath string) error {
	srcFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	dstFile, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dstFile.Close()

	if _, err := dstFile.ReadFrom(srcFile); err != nil {
		return fmt.Errorf("failed to copy config to backup: %w", err)
	}

	return dstFile.Sync()
}

// getConfigDir returns the configuration directory path.
// Honors XDG_CONFIG_HOME through os.UserConfigDir; replaceable in tests.
var getConfigDir = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// setDefaults sets default values in viper.
func setDefaults(v *viper.Viper) {
	d := newConfigWithDefaults()
	v.SetDefault("version", d.Version)
	v.SetDefault("layout.breakpoint", d.Layout.Breakpoint)
	v.SetDefault("layout.sidebar_width", d.Layout.SidebarWidth)
	v.SetDefault("layout.cell_width", d.Layout.CellWidth)
	v.SetDefault("notifications.visible_ms", d.Notifications.VisibleMS)
	v.SetDefault("notifications.exit_ms", d.Notifications.ExitMS)
	v.SetDefault("notifications.max_visible", d.Notifications.MaxVisible)
	v.SetDefault("catalog.videos", d.Catalog.Videos)
	v.SetDefault("catalog.sources", d.Catalog.Sources)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// newConfigWithDefaults creates a new Config with default values.
func newConfigWithDefaults() *Config {
	return &Config{
		Version: "1.0",
		Layout: LayoutConfig{
			Breakpoint:   layout.DefaultBreakpoint,
			SidebarWidth: 24,
			CellWidth:    8,
		},
		Notifications: NotificationConfig{
			VisibleMS:  int(notify.DefaultVisible / time.Millisecond),
			ExitMS:     int(notify.DefaultExit / time.Millisecond),
			MaxVisible: 0,
		},
		Catalog: CatalogConfig{
			Videos:  12,
			Sources: 5,
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// ExportCatalog writes a catalog to filePath. The format is chosen by the
// extension (.json, .yaml or .yml).
func ExportCatalog(filePath string, catalog models.Catalog) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return apperrors.NewUnsupportedFormatError(ext)
	}

	data := ExportData{
		Version:  "1.0",
		Videos:   catalog.Videos,
		Sources:  catalog.Sources,
		Settings: catalog.Settings,
		Exported: time.Now().Format(time.RFC3339),
	}

	fileDir := filepath.Dir(filePath)
	if fileDir != "" && fileDir != "." {
		if err := utils.EnsureDir(fileDir); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if ext == ".json" {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// ImportCatalog reads a catalog previously written by ExportCatalog.
func ImportCatalog(filePath string) (models.Catalog, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	var data ExportData
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".json":
		if err := json.NewDecoder(file).Decode(&data); err != nil {
			return models.Catalog{}, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(&data); err != nil {
			return models.Catalog{}, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return models.Catalog{}, apperrors.NewUnsupportedFormatError(ext)
	}

	return models.Catalog{
		Videos:   data.Videos,
		Sources:  data.Sources,
		Settings: data.Settings,
	}, nil
}
