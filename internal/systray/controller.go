package systray

import "github.com/kartoza/dual-monitor-tools/internal/cursor"

// Controller is the part of the cursor engine the tray drives
type Controller interface {
	Mode() cursor.Mode
	Free() error
	Sticky() error
	Lock() error
	CursorToNextScreen() error
	CursorToPrevScreen() error
	CursorToPrimaryScreen() error
}

var _ Controller = (*cursor.Engine)(nil)

func tooltip(mode cursor.Mode) string {
	switch mode {
	case cursor.Sticky:
		return "cursor sticks at screen edges"
	case cursor.Lock:
		return "cursor locked to its screen"
	}
	return "cursor moves freely"
}
