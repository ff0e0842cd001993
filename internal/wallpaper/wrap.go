package wallpaper

import (
	"image"
	"image/draw"
)

// NeedsWrap reports whether desktop extends above or left of the primary
// screen's origin
func NeedsWrap(desktop image.Rectangle) bool {
	return desktop.Min.X < 0 || desktop.Min.Y < 0
}

// Wrap rotates a composed wallpaper so that the desktop origin lands on
// pixel (0,0), for systems that tile the wallpaper from the primary
// screen. With the quadrants
//
//	ab
//	cd
//
// where d starts at the primary screen, the result is
//
//	dc
//	ba
//
// img is returned unchanged when the desktop starts at the origin.
func Wrap(img *image.RGBA, desktop image.Rectangle) *image.RGBA {
	if !NeedsWrap(desktop) {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	xWrap := min(max(-desktop.Min.X, 0), w)
	yWrap := min(max(-desktop.Min.Y, 0), h)
	xRest, yRest := w-xWrap, h-yWrap

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	blit := func(dst image.Rectangle, src image.Point) {
		if dst.Empty() {
			return
		}
		draw.Draw(out, dst, img, b.Min.Add(src), draw.Src)
	}

	// a
	blit(image.Rect(xRest, yRest, w, h), image.Pt(0, 0))
	// b
	blit(image.Rect(0, yRest, xRest, h), image.Pt(xWrap, 0))
	// c
	blit(image.Rect(xRest, 0, w, yRest), image.Pt(0, yWrap))
	// d
	blit(image.Rect(0, 0, xRest, yRest), image.Pt(xWrap, yWrap))
	return out
}
