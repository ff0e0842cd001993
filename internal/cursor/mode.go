package cursor

import (
	"fmt"
	"strings"

	"github.com/kartoza/dual-monitor-tools/internal/hook"
)

// Mode is the confinement applied to the cursor
type Mode int

const (
	// Free lets the cursor move between screens unhindered
	Free Mode = iota
	// Sticky resists crossing a screen edge until pushed hard enough
	Sticky
	// Lock keeps the cursor on its current screen
	Lock
)

var modeNames = []string{"free", "sticky", "lock"}

// String returns the config name of the mode
func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a config name into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "":
		return Free, nil
	case "sticky":
		return Sticky, nil
	case "lock", "locked":
		return Lock, nil
	}
	return Free, fmt.Errorf("unknown cursor mode %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Config holds the cursor module settings
type Config struct {
	// MinStickyForce is the push, in pixels, needed to leave a screen in sticky mode
	MinStickyForce int `json:"min_sticky_force"`

	AllowFreeMovementKey bool     `json:"allow_free_movement_key"`
	FreeMovementKey      hook.Key `json:"free_movement_key"`

	AllowFreeMovementButton bool        `json:"allow_free_movement_button"`
	FreeMovementButton      hook.Button `json:"free_movement_button"`

	// PrimaryReturnUnhindered lets the cursor enter the primary screen freely
	PrimaryReturnUnhindered bool `json:"primary_return_unhindered"`

	DefaultMode Mode `json:"default_mode"`

	// HasFreeTrigger is set when a dedicated "free cursor" command exists.
	// Without one, re-selecting the current mode toggles back to free.
	HasFreeTrigger bool `json:"-"`
}

// DefaultConfig returns the cursor defaults
func DefaultConfig() Config {
	return Config{
		MinStickyForce:       40,
		AllowFreeMovementKey: true,
		FreeMovementKey:      hook.KeyControl,
		FreeMovementButton:   hook.ButtonNone,
		DefaultMode:          Free,
	}
}
