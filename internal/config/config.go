// Package config handles configuration management using Viper
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Window    WindowConfig    `mapstructure:"window" json:"window"`
	UI        UIConfig        `mapstructure:"ui" json:"ui"`
	Wallpaper WallpaperConfig `mapstructure:"wallpaper" json:"wallpaper"`
	Advanced  AdvancedConfig  `mapstructure:"advanced" json:"advanced"`
	Detection DetectionConfig `mapstructure:"detection" json:"detection"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging"`

	// Per-display wallpaper assignments, keyed by output name
	Displays []DisplayConfig `mapstructure:"displays" json:"displays"`
}

// WindowConfig keeps the last window geometry
type WindowConfig struct {
	Width     int  `mapstructure:"width" json:"width"`
	Height    int  `mapstructure:"height" json:"height"`
	X         int  `mapstructure:"x" json:"x"`
	Y         int  `mapstructure:"y" json:"y"`
	Maximized bool `mapstructure:"maximized" json:"maximized"`
}

// UIConfig contains interface state carried between runs
type UIConfig struct {
	ShowDemoWindow    bool   `mapstructure:"showDemoWindow" json:"showDemoWindow"`
	SelectedDisplay   int    `mapstructure:"selectedDisplay" json:"selectedDisplay"`
	LastWallpaperPath string `mapstructure:"lastWallpaperPath" json:"lastWallpaperPath"`
}

// WallpaperConfig contains wallpaper library settings
type WallpaperConfig struct {
	Directories    []string `mapstructure:"directories" json:"directories"`
	DefaultMode    string   `mapstructure:"defaultMode" json:"defaultMode"`
	AutoApplyToAll bool     `mapstructure:"autoApplyToAll" json:"autoApplyToAll"`
}

// AdvancedConfig contains slideshow and hotplug settings
type AdvancedConfig struct {
	EnableHotplugEvents bool `mapstructure:"enableHotplugEvents" json:"enableHotplugEvents"`
	EnableLiveSync      bool `mapstructure:"enableLiveSync" json:"enableLiveSync"`
	SlideshowInterval   int  `mapstructure:"slideshowInterval" json:"slideshowInterval"` // seconds
	EnableSlideshow     bool `mapstructure:"enableSlideshow" json:"enableSlideshow"`
}

// DetectionConfig selects the legacy X query method
type DetectionConfig struct {
	LegacySource string `mapstructure:"legacySource" json:"legacySource"` // "xrandr", "randr" or "wlr-randr"
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel"` // Override LOG_LEVEL env var
}

// DisplayConfig stores the wallpaper of one output
type DisplayConfig struct {
	Name          string  `mapstructure:"name" json:"name"`
	WallpaperMode int     `mapstructure:"wallpaperMode" json:"wallpaperMode"`
	WallpaperPath string  `mapstructure:"wallpaperPath" json:"wallpaperPath"`
	Scale         float64 `mapstructure:"scale" json:"scale"`
	Enabled       bool    `mapstructure:"enabled" json:"enabled"`
}

var validModes = []string{"Stretch", "Center", "Tile", "Scale"}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Window: WindowConfig{
			Width:  1200,
			Height: 800,
			X:      100,
			Y:      100,
		},
		UI: UIConfig{},
		Wallpaper: WallpaperConfig{
			Directories: []string{
				"~/Pictures/Wallpapers",
				"~/Downloads",
				"/usr/share/backgrounds",
			},
			DefaultMode: "Scale",
		},
		Advanced: AdvancedConfig{
			EnableHotplugEvents: true,
			EnableLiveSync:      true,
			SlideshowInterval:   300,
		},
		Detection: DetectionConfig{
			LegacySource: "xrandr",
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
		Displays: []DisplayConfig{},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigType("json")
	viper.SetConfigFile(GetConfigPath())

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("window.width", DefaultConfig.Window.Width)
	viper.SetDefault("window.height", DefaultConfig.Window.Height)
	viper.SetDefault("window.x", DefaultConfig.Window.X)
	viper.SetDefault("window.y", DefaultConfig.Window.Y)
	viper.SetDefault("window.maximized", DefaultConfig.Window.Maximized)

	viper.SetDefault("ui.showDemoWindow", DefaultConfig.UI.ShowDemoWindow)
	viper.SetDefault("ui.selectedDisplay", DefaultConfig.UI.SelectedDisplay)
	viper.SetDefault("ui.lastWallpaperPath", DefaultConfig.UI.LastWallpaperPath)

	viper.SetDefault("wallpaper.directories", DefaultConfig.Wallpaper.Directories)
	viper.SetDefault("wallpaper.defaultMode", DefaultConfig.Wallpaper.DefaultMode)
	viper.SetDefault("wallpaper.autoApplyToAll", DefaultConfig.Wallpaper.AutoApplyToAll)

	viper.SetDefault("advanced.enableHotplugEvents", DefaultConfig.Advanced.EnableHotplugEvents)
	viper.SetDefault("advanced.enableLiveSync", DefaultConfig.Advanced.EnableLiveSync)
	viper.SetDefault("advanced.slideshowInterval", DefaultConfig.Advanced.SlideshowInterval)
	viper.SetDefault("advanced.enableSlideshow", DefaultConfig.Advanced.EnableSlideshow)

	viper.SetDefault("detection.legacySource", DefaultConfig.Detection.LegacySource)
	viper.SetDefault("logging.logLevel", DefaultConfig.Logging.LogLevel)

	viper.SetDefault("displays", DefaultConfig.Displays)

	// Read config file if it exists, a missing file means defaults
	if _, err := os.Stat(GetConfigPath()); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal config
	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	for i := range c.Displays {
		if c.Displays[i].Scale == 0 {
			c.Displays[i].Scale = 1.0
		}
	}

	cfg = c
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		d.Wallpaper.Directories = append([]string(nil), DefaultConfig.Wallpaper.Directories...)
		d.Displays = []DisplayConfig{}
		cfg = &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Validate checks values that would break the application
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Advanced.SlideshowInterval < 0 {
		return fmt.Errorf("slideshow interval must not be negative, got %d", c.Advanced.SlideshowInterval)
	}
	if !isValidMode(c.Wallpaper.DefaultMode) {
		return fmt.Errorf("unknown default wallpaper mode %q", c.Wallpaper.DefaultMode)
	}
	switch c.Detection.LegacySource {
	case "", "xrandr", "randr", "wlr-randr":
	default:
		return fmt.Errorf("unknown legacy display source %q", c.Detection.LegacySource)
	}
	for _, d := range c.Displays {
		if d.Name == "" {
			return fmt.Errorf("display entry without a name")
		}
		if d.WallpaperMode < 0 || d.WallpaperMode >= len(validModes) {
			return fmt.Errorf("display %s: invalid wallpaper mode %d", d.Name, d.WallpaperMode)
		}
	}
	return nil
}

func isValidMode(mode string) bool {
	for _, m := range validModes {
		if strings.EqualFold(m, mode) {
			return true
		}
	}
	return false
}

// GetDisplayConfig returns the stored settings for a display by name
func (c *Config) GetDisplayConfig(name string) (DisplayConfig, bool) {
	for _, d := range c.Displays {
		if d.Name == name {
			return d, true
		}
	}
	return DisplayConfig{}, false
}

// SetDisplayConfig adds or replaces the settings of dc.Name
func (c *Config) SetDisplayConfig(dc DisplayConfig) {
	for i, d := range c.Displays {
		if d.Name == dc.Name {
			c.Displays[i] = dc
			return
		}
	}
	c.Displays = append(c.Displays, dc)
}

// RemoveDisplayConfig drops the settings of a display by name
func (c *Config) RemoveDisplayConfig(name string) bool {
	for i, d := range c.Displays {
		if d.Name == name {
			c.Displays = append(c.Displays[:i], c.Displays[i+1:]...)
			return true
		}
	}
	return false
}

// WallpaperDirectories returns the library directories with ~ expanded
func (c *Config) WallpaperDirectories() []string {
	dirs := make([]string, 0, len(c.Wallpaper.Directories))
	for _, d := range c.Wallpaper.Directories {
		dirs = append(dirs, ExpandPath(d))
	}
	return dirs
}

// ExpandPath replaces a leading ~ with the home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Save saves the current configuration to file.
// The file is written from the struct so keys keep their camelCase spelling.
func Save() error {
	configPath := GetConfigPath()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(Get(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(configPath, append(data, '\n'), 0640); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Backup copies the config file next to itself with a .backup suffix
func Backup() (string, error) {
	src := GetConfigPath()
	dst := src + ".backup"

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open config: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0640)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return dst, out.Close()
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	// If override is set, use that
	if configPathOverride != "" {
		return configPathOverride
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "wayper", "config.json")
}
