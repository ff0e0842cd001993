//go:build windows || darwin

package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

var keyCodes = map[string]hotkey.Key{
	"space": hotkey.KeySpace, "enter": hotkey.KeyReturn, "return": hotkey.KeyReturn,
	"esc": hotkey.KeyEscape, "escape": hotkey.KeyEscape, "delete": hotkey.KeyDelete,
	"tab": hotkey.KeyTab, "left": hotkey.KeyLeft, "right": hotkey.KeyRight,
	"up": hotkey.KeyUp, "down": hotkey.KeyDown,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3, "4": hotkey.Key4,
	"5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7, "8": hotkey.Key8, "9": hotkey.Key9,

	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD, "e": hotkey.KeyE,
	"f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH, "i": hotkey.KeyI, "j": hotkey.KeyJ,
	"k": hotkey.KeyK, "l": hotkey.KeyL, "m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO,
	"p": hotkey.KeyP, "q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX, "y": hotkey.KeyY,
	"z": hotkey.KeyZ,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

type registered struct {
	binding Binding
	hk      *hotkey.Hotkey
}

// Register registers every binding with a non-empty combo. Bindings that
// fail are logged and skipped; their errors are joined and returned
// straight away so callers can report them before Run blocks.
func (m *Manager) Register(bindings []Binding) error {
	var errs []error
	for _, b := range bindings {
		if strings.TrimSpace(b.Combo) == "" {
			continue
		}
		if err := m.register(b); err != nil {
			m.logger.Warn("failed to register hotkey", "name", b.Name, "combo", b.Combo, "error", err)
			errs = append(errs, err)
			continue
		}
		m.logger.Debug("hotkey registered", "name", b.Name, "combo", b.Combo)
	}
	return errors.Join(errs...)
}

// Run dispatches key presses of the registered hotkeys until ctx is
// cancelled, then unregisters them
func (m *Manager) Run(ctx context.Context) {
	m.mu.Lock()
	keys := append([]registered(nil), m.keys...)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, r := range keys {
		wg.Add(1)
		go func(r registered) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-r.hk.Keydown():
					r.binding.Action()
				}
			}
		}(r)
	}

	<-ctx.Done()
	wg.Wait()
	m.unregisterAll()
}

func (m *Manager) register(b Binding) error {
	c, err := Parse(b.Combo)
	if err != nil {
		return err
	}
	mods := make([]hotkey.Modifier, 0, len(c.Mods))
	for _, mod := range c.Mods {
		pm, ok := modifierMap[mod]
		if !ok {
			return fmt.Errorf("hotkey %q: modifier %s not available on this platform", b.Combo, mod)
		}
		mods = append(mods, pm)
	}

	hk := hotkey.New(mods, keyCodes[c.Key])
	if err := hk.Register(); err != nil {
		return fmt.Errorf("hotkey %q: %w", b.Combo, err)
	}

	m.mu.Lock()
	m.keys = append(m.keys, registered{binding: b, hk: hk})
	m.mu.Unlock()
	return nil
}

func (m *Manager) unregisterAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.keys {
		if err := r.hk.Unregister(); err != nil {
			m.logger.Debug("failed to unregister hotkey", "error", err)
		}
	}
	m.keys = nil
}
