//go:build !cgo

package systray

import (
	"context"
	"errors"
	"log/slog"
)

// Available reports whether this build can show a tray icon
const Available = false

// ErrUnavailable is returned when the binary was built without CGO
var ErrUnavailable = errors.New("system tray not available: built without CGO")

// Run always fails in builds without CGO
func Run(ctx context.Context, ctrl Controller, logger *slog.Logger) error {
	return ErrUnavailable
}
