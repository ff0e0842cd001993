package cursor

import (
	"errors"
	"fmt"
	"image"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
)

// ErrNoScreens is returned when navigation has no screen to go to
var ErrNoScreens = errors.New("no screens available")

// ScreenList is a Screens that can also be walked by index
type ScreenList interface {
	Screens
	Len() int
	ScreenAt(i int) image.Rectangle
	ScreenIndex(p image.Point) int
	PrimaryIndex() int
}

// NextScreenPosition maps p proportionally from its screen onto the screen
// delta steps further in the list, wrapping at either end.
func NextScreenPosition(screens ScreenList, p image.Point, delta int) (image.Point, error) {
	n := screens.Len()
	if n == 0 {
		return p, ErrNoScreens
	}
	cur := screens.ScreenIndex(p)
	if cur < 0 {
		cur = 0
	}
	next := ((cur+delta)%n + n) % n

	from := screens.ScreenAt(cur)
	to := screens.ScreenAt(next)
	sc, err := geometry.NewRectScaler(from, to)
	if err != nil {
		return p, fmt.Errorf("failed to map cursor onto screen %d: %w", next, err)
	}
	return sc.Point(p), nil
}

// PrimaryCenter returns the middle of the primary screen
func PrimaryCenter(screens Screens) (image.Point, error) {
	r := screens.PrimaryBounds()
	if r.Empty() {
		return image.Point{}, ErrNoScreens
	}
	return geometry.Midpoint(r), nil
}

// MoveTo places the cursor at p. The input filter is lifted for the jump
// so the barriers don't pull the cursor back, then restored around p.
func (e *Engine) MoveTo(p image.Point) error {
	e.modeMu.Lock()
	defer e.modeMu.Unlock()

	installed := e.reg != nil
	e.releaseLocked()

	err := e.icpt.SetCursorPos(p)
	if err != nil {
		e.logger.Warn("failed to move cursor", "x", p.X, "y", p.Y, "error", err)
		p = e.cursorPos()
	}

	e.mu.Lock()
	e.last = p
	e.rebuildLocked(p)
	mode := e.mode
	e.mu.Unlock()

	if installed {
		reg, ierr := e.icpt.Install(e)
		if ierr != nil {
			e.applyMode(Free, p)
			e.logger.Error("failed to reinstall input filter", "mode", mode, "error", ierr)
			e.notify("Dual Monitor Tools", fmt.Sprintf("Cursor %s mode was switched off: %v", mode, ierr))
			if err == nil {
				err = ierr
			}
		} else {
			e.reg = reg
		}
	}
	return err
}

// CursorToNextScreen moves the cursor to the same relative spot on the
// next screen
func (e *Engine) CursorToNextScreen() error {
	return e.cursorToDelta(1)
}

// CursorToPrevScreen moves the cursor to the same relative spot on the
// previous screen
func (e *Engine) CursorToPrevScreen() error {
	return e.cursorToDelta(-1)
}

// CursorToPrimaryScreen centres the cursor on the primary screen
func (e *Engine) CursorToPrimaryScreen() error {
	screens := e.currentScreens()
	if screens == nil {
		return ErrNoScreens
	}
	p, err := PrimaryCenter(screens)
	if err != nil {
		return err
	}
	return e.MoveTo(p)
}

func (e *Engine) cursorToDelta(delta int) error {
	list, ok := e.currentScreens().(ScreenList)
	if !ok {
		return ErrNoScreens
	}
	p, err := NextScreenPosition(list, e.cursorPos(), delta)
	if err != nil {
		return err
	}
	return e.MoveTo(p)
}

func (e *Engine) currentScreens() Screens {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.screens
}
