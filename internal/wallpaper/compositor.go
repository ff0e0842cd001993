// Package wallpaper lays images out across the monitors of a virtual
// desktop and renders the result as a single wallpaper bitmap.
package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/models"
)

var (
	// ErrScreenIndex is returned for a screen index outside the layout
	ErrScreenIndex = errors.New("screen index out of range")
	// ErrNoActiveScreens is returned when an operation needs active screens
	ErrNoActiveScreens = errors.New("no active screens")
	// ErrZoomFactor is returned for a zoom factor that is not positive
	ErrZoomFactor = errors.New("zoom factor must be positive and finite")
)

// Compositor holds one ScreenMapping per monitor for an editing session.
// It is not safe for concurrent use.
type Compositor struct {
	screens    []*ScreenMapping
	active     []int
	desktop    image.Rectangle
	background color.Color
	interp     Interpolation
	logger     *slog.Logger
}

// Option configures a Compositor
type Option func(*Compositor)

// WithBackground sets the colour shown where no image is drawn
func WithBackground(c color.Color) Option {
	return func(w *Compositor) {
		if c != nil {
			w.background = c
		}
	}
}

// WithInterpolation sets the resampling used when drawing
func WithInterpolation(i Interpolation) Option {
	return func(w *Compositor) {
		w.interp = i
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(w *Compositor) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a compositor for monitors, in enumeration order
func New(monitors []models.Monitor, opts ...Option) *Compositor {
	w := &Compositor{
		background: color.Black,
		interp:     Bicubic,
		logger:     slog.Default(),
	}
	rects := make([]image.Rectangle, 0, len(monitors))
	for _, m := range monitors {
		w.screens = append(w.screens, newScreenMapping(m.Bounds, m.Primary))
		rects = append(rects, m.Bounds)
	}
	w.desktop = geometry.BoundingRect(rects...)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Screens returns the mappings of every screen
func (w *Compositor) Screens() []*ScreenMapping {
	return w.screens
}

// ActiveScreens returns the indices targeted by the next operation
func (w *Compositor) ActiveScreens() []int {
	return append([]int(nil), w.active...)
}

// DesktopRect returns the union of all screens
func (w *Compositor) DesktopRect() image.Rectangle {
	return w.desktop
}

// Background returns the fill colour
func (w *Compositor) Background() color.Color {
	return w.background
}

// SetBackground changes the fill colour
func (w *Compositor) SetBackground(c color.Color) {
	if c != nil {
		w.background = c
	}
}

// SetActiveScreens replaces the active set. Any bad index rejects the
// whole call and leaves the previous set in place.
func (w *Compositor) SetActiveScreens(indices []int) error {
	if err := w.checkIndices(indices); err != nil {
		return err
	}
	w.active = append(w.active[:0], indices...)
	return nil
}

// SelectAllScreens makes every screen active
func (w *Compositor) SelectAllScreens() {
	w.active = w.active[:0]
	for i := range w.screens {
		w.active = append(w.active, i)
	}
}

func (w *Compositor) checkIndices(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(w.screens) {
			return fmt.Errorf("%w: %d (have %d screens)", ErrScreenIndex, i, len(w.screens))
		}
	}
	return nil
}

// activeBounds returns the bounding rect of the active screens
func (w *Compositor) activeBounds() (image.Rectangle, error) {
	if len(w.active) == 0 {
		return image.Rectangle{}, ErrNoActiveScreens
	}
	rects := make([]image.Rectangle, len(w.active))
	for n, i := range w.active {
		rects[n] = w.screens[i].ScreenRect
	}
	return geometry.BoundingRect(rects...), nil
}

// AddImage lays img over the active screens as one surface
func (w *Compositor) AddImage(img image.Image, fit geometry.Fit) error {
	if img == nil {
		return errors.New("no image to add")
	}
	bounds, err := w.activeBounds()
	if err != nil {
		return err
	}

	placement := geometry.FitRect(fit, img.Bounds().Size(), bounds)
	for _, i := range w.active {
		w.screens[i].assign(img, placement)
	}
	w.logger.Debug("image added",
		"screens", w.active,
		"fit", fit,
		"size", img.Bounds().Size(),
		"placement", placement,
	)
	return nil
}

// AddImageTo makes indices the active set and adds img to them
func (w *Compositor) AddImageTo(img image.Image, indices []int, fit geometry.Fit) error {
	if err := w.SetActiveScreens(indices); err != nil {
		return err
	}
	return w.AddImage(img, fit)
}

// MoveActiveScreens pans the active viewports. A positive dx moves the
// visible window right, so the picture appears to move left.
func (w *Compositor) MoveActiveScreens(dx, dy int) error {
	if len(w.active) == 0 {
		return ErrNoActiveScreens
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	for _, i := range w.active {
		w.screens[i].displace(dx, dy)
	}
	return nil
}

// MoveScreens makes indices the active set and pans them
func (w *Compositor) MoveScreens(indices []int, dx, dy int) error {
	if err := w.SetActiveScreens(indices); err != nil {
		return err
	}
	return w.MoveActiveScreens(dx, dy)
}

// ZoomActiveScreens scales every active viewport about the centre of the
// active screens taken together. factor > 1 zooms in.
func (w *Compositor) ZoomActiveScreens(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrZoomFactor, factor)
	}
	bounds, err := w.activeBounds()
	if err != nil {
		return err
	}
	centre := geometry.Midpoint(bounds)
	// a viewport zoomed down to nothing could never be zoomed back out
	for _, i := range w.active {
		if geometry.ZoomRect(w.screens[i].DestRect, centre, factor).Empty() {
			return fmt.Errorf("%w: %v collapses screen %d", ErrZoomFactor, factor, i)
		}
	}
	for _, i := range w.active {
		w.screens[i].zoom(centre, factor)
	}
	return nil
}

// ZoomScreens makes indices the active set and zooms them
func (w *Compositor) ZoomScreens(indices []int, factor float64) error {
	if err := w.SetActiveScreens(indices); err != nil {
		return err
	}
	return w.ZoomActiveScreens(factor)
}

// ResetView returns the active viewports to their screens
func (w *Compositor) ResetView() {
	for _, i := range w.active {
		m := w.screens[i]
		m.DestRect = m.ScreenRect
		m.update()
	}
}

// ClearScreens removes the image from the active screens
func (w *Compositor) ClearScreens() {
	for _, i := range w.active {
		m := w.screens[i]
		m.Image = nil
		m.placement = image.Rectangle{}
		m.DestRect = m.ScreenRect
		m.update()
	}
}
