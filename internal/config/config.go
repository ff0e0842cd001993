package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kartoza/dual-monitor-tools/internal/cursor"
	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/logging"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".config/dual-monitor-tools"
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"
	// DefaultWallpaperFile is the bitmap handed to the desktop
	DefaultWallpaperFile = "wallpaper.bmp"
)

// Module names used as the first half of a setting key
const (
	ModuleCursor    = "cursor"
	ModuleWallpaper = "wallpaper"
	ModuleLogging   = "logging"
	ModuleWindow    = "window"
)

// Config holds the application configuration
type Config struct {
	Cursor    CursorConfig    `json:"cursor"`
	Wallpaper WallpaperConfig `json:"wallpaper"`
	Window    WindowConfig    `json:"window"`
	Logging   logging.Options `json:"logging"`
}

// CursorConfig is the cursor engine settings plus the hotkeys bound to it
type CursorConfig struct {
	cursor.Config
	Hotkeys HotkeyConfig `json:"hotkeys"`
}

// HotkeyConfig holds key combinations such as "ctrl+shift+s". Empty
// strings leave the command unbound.
type HotkeyConfig struct {
	Free          string `json:"free,omitempty"`
	Sticky        string `json:"sticky,omitempty"`
	Lock          string `json:"lock,omitempty"`
	NextScreen    string `json:"next_screen,omitempty"`
	PrevScreen    string `json:"prev_screen,omitempty"`
	PrimaryScreen string `json:"primary_screen,omitempty"`
}

// WindowConfig holds the hotkeys acting on the foreground window
type WindowConfig struct {
	Hotkeys WindowHotkeys `json:"hotkeys"`
}

// WindowHotkeys binds combos to window actions, empty leaves one unbound
type WindowHotkeys struct {
	NextScreen string `json:"next_screen,omitempty"`
	PrevScreen string `json:"prev_screen,omitempty"`
	SnapLeft   string `json:"snap_left,omitempty"`
	SnapRight  string `json:"snap_right,omitempty"`
	Maximise   string `json:"maximise,omitempty"`
	Minimise   string `json:"minimise,omitempty"`
}

// WallpaperConfig holds the compositor settings
type WallpaperConfig struct {
	// Screens are the monitor indices an image is laid over; empty means all
	Screens       []int        `json:"screens,omitempty"`
	Fit           geometry.Fit `json:"fit"`
	Background    string       `json:"background"`
	Interpolation string       `json:"interpolation"`
	// Output is where the composed wallpaper is written
	Output string `json:"output"`
	// LegacyWrap rotates the image for desktops left of or above the primary screen
	LegacyWrap bool   `json:"legacy_wrap"`
	LastImage  string `json:"last_image,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Cursor: CursorConfig{Config: cursor.DefaultConfig()},
		Wallpaper: WallpaperConfig{
			Fit:           geometry.OverStretch,
			Background:    "#000000",
			Interpolation: "bicubic",
			Output:        filepath.Join(GetConfigDir(), DefaultWallpaperFile),
		},
		Logging: logging.DefaultOptions(),
	}
}

// EngineConfig returns the cursor settings with HasFreeTrigger derived
// from the hotkeys
func (c *Config) EngineConfig() cursor.Config {
	cfg := c.Cursor.Config
	cfg.HasFreeTrigger = c.Cursor.Hotkeys.Free != ""
	return cfg
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// EnsureDirectories creates the necessary directories
func EnsureDirectories() error {
	return os.MkdirAll(GetConfigDir(), 0755)
}

// Load loads the configuration from the default path
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads the configuration from path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Cursor.MinStickyForce < 0 {
		return nil, fmt.Errorf("failed to parse %s: min_sticky_force must not be negative", path)
	}
	return &cfg, nil
}

// Save saves the configuration to the default path
func Save(cfg *Config) error {
	if err := EnsureDirectories(); err != nil {
		return err
	}
	return SaveTo(cfg, GetConfigPath())
}

// SaveTo saves the configuration to path
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Setting returns one value addressed by module and setting name, for
// example ("cursor", "min_sticky_force")
func (c *Config) Setting(module, name string) (json.RawMessage, error) {
	section, err := c.section(module)
	if err != nil {
		return nil, err
	}
	v, ok := section[name]
	if !ok {
		return nil, fmt.Errorf("unknown setting %s.%s", module, name)
	}
	return v, nil
}

// SettingNames lists the settings of a module in sorted order
func (c *Config) SettingNames(module string) ([]string, error) {
	section, err := c.section(module)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(section))
	for k := range section {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Config) section(module string) (map[string]json.RawMessage, error) {
	var v any
	switch module {
	case ModuleCursor:
		v = c.Cursor
	case ModuleWallpaper:
		v = c.Wallpaper
	case ModuleLogging:
		v = c.Logging
	case ModuleWindow:
		v = c.Window
	default:
		return nil, fmt.Errorf("unknown module %q", module)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var section map[string]json.RawMessage
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, err
	}
	return section, nil
}
