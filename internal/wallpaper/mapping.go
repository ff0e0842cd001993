package wallpaper

import (
	"image"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
)

// ScreenMapping ties one screen to the part of an image it shows.
//
// DestRect is a viewport in virtual desktop coordinates. It starts out
// equal to ScreenRect and is moved or scaled to pan and zoom. Whatever
// part of the image placement falls inside the viewport is stretched over
// the screen: SourceRect is that part in image pixels and TargetRect the
// matching desktop pixels it is drawn into.
type ScreenMapping struct {
	ScreenRect image.Rectangle
	Primary    bool

	SourceRect image.Rectangle
	DestRect   image.Rectangle
	TargetRect image.Rectangle
	Image      image.Image

	// placement is where the whole image sits in virtual desktop space
	placement image.Rectangle
	imageRect image.Rectangle
}

func newScreenMapping(screen image.Rectangle, primary bool) *ScreenMapping {
	return &ScreenMapping{
		ScreenRect: screen,
		Primary:    primary,
		DestRect:   screen,
	}
}

// HasImage reports whether the screen draws anything
func (m *ScreenMapping) HasImage() bool {
	return m.Image != nil && !m.SourceRect.Empty() && !m.TargetRect.Empty()
}

// Placement returns where the image was laid out in virtual desktop space
func (m *ScreenMapping) Placement() image.Rectangle {
	return m.placement
}

// assign lays img out over placement and resets the viewport
func (m *ScreenMapping) assign(img image.Image, placement image.Rectangle) {
	m.Image = img
	b := img.Bounds()
	m.imageRect = image.Rect(0, 0, b.Dx(), b.Dy())
	m.placement = placement
	m.DestRect = m.ScreenRect
	m.update()
}

// displace moves the viewport by (dx, dy)
func (m *ScreenMapping) displace(dx, dy int) {
	m.DestRect = m.DestRect.Add(image.Pt(dx, dy))
	m.update()
}

// zoom scales the viewport about centre. factor > 1 shrinks it.
func (m *ScreenMapping) zoom(centre image.Point, factor float64) {
	m.DestRect = geometry.ZoomRect(m.DestRect, centre, factor)
	m.update()
}

// update derives SourceRect and TargetRect from the viewport. A mapping
// that cannot be computed is left empty and draws nothing.
func (m *ScreenMapping) update() {
	m.SourceRect = image.Rectangle{}
	m.TargetRect = image.Rectangle{}
	if m.Image == nil || m.placement.Empty() || m.DestRect.Empty() || m.imageRect.Empty() {
		return
	}

	visible := m.DestRect.Intersect(m.placement)
	if visible.Empty() {
		return
	}
	src, err := geometry.CalcDestRect(m.placement, m.imageRect, visible)
	if err != nil {
		return
	}
	dst, err := geometry.CalcDestRect(m.DestRect, m.ScreenRect, visible)
	if err != nil {
		return
	}
	src = src.Intersect(m.imageRect)
	dst = dst.Intersect(m.ScreenRect)
	if src.Empty() || dst.Empty() {
		return
	}
	m.SourceRect = src
	m.TargetRect = dst
}
