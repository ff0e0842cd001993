// Package hotkey binds global key combinations to cursor commands
package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupported is returned where global hotkeys cannot be registered
var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

// Modifier is a platform independent modifier key
type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
}

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "ctrl"
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	case ModSuper:
		return "super"
	}
	return fmt.Sprintf("mod(%d)", int(m))
}

// keyNames are the non-modifier keys a combo may use
var keyNames = func() map[string]bool {
	names := []string{
		"space", "enter", "return", "esc", "escape", "delete", "tab",
		"left", "right", "up", "down",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, string(c))
	}
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}()

// Combo is a parsed key combination
type Combo struct {
	Mods []Modifier
	Key  string
}

// String formats the combo the way Parse reads it
func (c Combo) String() string {
	parts := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		parts = append(parts, m.String())
	}
	return strings.Join(append(parts, c.Key), "+")
}

// Parse reads combinations such as "ctrl+shift+s". Modifiers are sorted
// and deduplicated; exactly one non-modifier key is required.
func Parse(s string) (Combo, error) {
	var c Combo
	seen := map[Modifier]bool{}
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Combo{}, fmt.Errorf("invalid hotkey %q", s)
		}
		if m, ok := modifierNames[part]; ok {
			if !seen[m] {
				seen[m] = true
				c.Mods = append(c.Mods, m)
			}
			continue
		}
		if !keyNames[part] {
			return Combo{}, fmt.Errorf("invalid hotkey %q: unknown key %q", s, part)
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("invalid hotkey %q: more than one key", s)
		}
		c.Key = part
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("invalid hotkey %q: no key", s)
	}
	sort.Slice(c.Mods, func(i, j int) bool { return c.Mods[i] < c.Mods[j] })
	return c, nil
}

// Binding ties a combo string to an action
type Binding struct {
	Name   string
	Combo  string
	Action func()
}

// Manager owns the registered hotkeys
type Manager struct {
	logger *slog.Logger

	mu   sync.Mutex
	keys []registered
}

// NewManager creates an empty Manager
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}
