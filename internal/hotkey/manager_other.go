//go:build !windows && !darwin

package hotkey

import (
	"context"
	"fmt"
	"strings"
)

type registered struct{}

// Register validates the bindings and reports ErrUnsupported for every
// bound combo
func (m *Manager) Register(bindings []Binding) error {
	for _, b := range bindings {
		if strings.TrimSpace(b.Combo) == "" {
			continue
		}
		if _, err := Parse(b.Combo); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrUnsupported, b.Name)
	}
	return nil
}

// Run waits for ctx; nothing is ever dispatched
func (m *Manager) Run(ctx context.Context) {
	<-ctx.Done()
}
