// Package window moves and resizes the foreground window relative to the
// monitor layout.
package window

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/models"
)

var (
	// ErrUnsupported is returned where windows cannot be moved
	ErrUnsupported = errors.New("moving windows is not supported on this platform")
	// ErrNoWindow is returned when nothing has the focus
	ErrNoWindow = errors.New("no foreground window")
)

// Action is a command applied to the foreground window
type Action int

const (
	NextScreen Action = iota
	PrevScreen
	SnapLeft
	SnapRight
	Maximise
	Minimise
)

var actionNames = []string{"next", "prev", "snap-left", "snap-right", "maximise", "minimise"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions lists every action in order
func Actions() []Action {
	out := make([]Action, len(actionNames))
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// ParseAction accepts the names printed by String
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if strings.EqualFold(s, name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown window action %q (want one of %s)", s, strings.Join(actionNames, ", "))
}

// Moves reports whether the action changes the window rectangle rather
// than its show state
func (a Action) Moves() bool {
	return a == NextScreen || a == PrevScreen || a == SnapLeft || a == SnapRight
}

// Layout is the monitor list windows are placed against
type Layout interface {
	Len() int
	ScreenIndex(p image.Point) int
	Monitors() []models.Monitor
}

// Placement returns where a window occupying r goes for a moving action.
// The screen holding the centre of r is the window's screen. Moves
// between screens keep the window's position and size relative to the
// work area.
func Placement(layout Layout, r image.Rectangle, a Action) (image.Rectangle, error) {
	if !a.Moves() {
		return r, fmt.Errorf("%s does not move the window", a)
	}
	n := layout.Len()
	if n == 0 {
		return r, errors.New("no screens available")
	}
	cur := layout.ScreenIndex(geometry.Midpoint(r))
	if cur < 0 {
		cur = 0
	}
	monitors := layout.Monitors()
	area := workArea(monitors[cur])

	switch a {
	case SnapLeft:
		return image.Rect(area.Min.X, area.Min.Y, area.Min.X+area.Dx()/2, area.Max.Y), nil
	case SnapRight:
		return image.Rect(area.Min.X+area.Dx()/2, area.Min.Y, area.Max.X, area.Max.Y), nil
	}

	delta := 1
	if a == PrevScreen {
		delta = -1
	}
	next := ((cur+delta)%n + n) % n
	sc, err := geometry.NewRectScaler(area, workArea(monitors[next]))
	if err != nil {
		return r, fmt.Errorf("failed to map window onto screen %d: %w", next, err)
	}
	return sc.Rect(r), nil
}

func workArea(m models.Monitor) image.Rectangle {
	if m.WorkArea.Empty() {
		return m.Bounds
	}
	return m.WorkArea
}
