package monitor

import (
	"image"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/models"
)

// Layout is an immutable snapshot of the monitor arrangement.
// It answers the geometry queries made from the input filter, so all
// derived values are computed once up front.
type Layout struct {
	monitors []models.Monitor
	bounds   []image.Rectangle
	virtual  image.Rectangle
	primary  int
}

// NewLayout builds a Layout from monitors in enumeration order
func NewLayout(monitors []models.Monitor) *Layout {
	l := &Layout{
		monitors: append([]models.Monitor(nil), monitors...),
		bounds:   make([]image.Rectangle, len(monitors)),
		primary:  -1,
	}
	for i, m := range l.monitors {
		l.bounds[i] = m.Bounds
		if m.Primary && l.primary < 0 {
			l.primary = i
		}
	}
	if l.primary < 0 && len(monitors) > 0 {
		l.primary = 0
	}
	l.virtual = geometry.BoundingRect(l.bounds...)
	return l
}

// Monitors returns a copy of the monitors
func (l *Layout) Monitors() []models.Monitor {
	return append([]models.Monitor(nil), l.monitors...)
}

// Len returns the number of monitors
func (l *Layout) Len() int {
	return len(l.monitors)
}

// VirtualBounds returns the union of all monitor bounds
func (l *Layout) VirtualBounds() image.Rectangle {
	return l.virtual
}

// ScreenIndex returns the monitor containing p, or the nearest one when
// p lies outside every monitor. It returns -1 for an empty layout.
func (l *Layout) ScreenIndex(p image.Point) int {
	for i, b := range l.bounds {
		if p.In(b) {
			return i
		}
	}
	return geometry.Nearest(l.bounds, p)
}

// ScreenBounds returns the bounds of the monitor containing p
func (l *Layout) ScreenBounds(p image.Point) image.Rectangle {
	i := l.ScreenIndex(p)
	if i < 0 {
		return image.Rectangle{}
	}
	return l.bounds[i]
}

// ScreenAt returns the bounds of the monitor at index i
func (l *Layout) ScreenAt(i int) image.Rectangle {
	if i < 0 || i >= len(l.bounds) {
		return image.Rectangle{}
	}
	return l.bounds[i]
}

// PrimaryIndex returns the index of the primary monitor, -1 if none
func (l *Layout) PrimaryIndex() int {
	return l.primary
}

// PrimaryBounds returns the bounds of the primary monitor
func (l *Layout) PrimaryBounds() image.Rectangle {
	return l.ScreenAt(l.primary)
}
