package geometry

import (
	"image"
	"math"
)

// BoundingRect returns the smallest rectangle holding all of rects.
// Unlike image.Rectangle.Union, empty rectangles still contribute their
// position when they are the only input.
func BoundingRect(rects ...image.Rectangle) image.Rectangle {
	if len(rects) == 0 {
		return image.Rectangle{}
	}
	r := rects[0]
	for _, o := range rects[1:] {
		r = r.Union(o)
	}
	return r
}

// Midpoint returns the centre point of r, truncated toward Min.
func Midpoint(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// ZoomRect scales r about centre. A factor above one shrinks the
// rectangle, a factor below one grows it.
func ZoomRect(r image.Rectangle, centre image.Point, factor float64) image.Rectangle {
	scale := func(v, c int) int {
		return c + int(math.Round(float64(v-c)/factor))
	}
	return image.Rect(
		scale(r.Min.X, centre.X),
		scale(r.Min.Y, centre.Y),
		scale(r.Max.X, centre.X),
		scale(r.Max.Y, centre.Y),
	)
}

// Nearest returns the index of the rectangle closest to p, or -1 when
// rects is empty. A rectangle containing p has distance zero.
func Nearest(rects []image.Rectangle, p image.Point) int {
	best := -1
	bestDist := int64(math.MaxInt64)
	for i, r := range rects {
		d := distSq(r, p)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func distSq(r image.Rectangle, p image.Point) int64 {
	var dx, dy int64
	switch {
	case p.X < r.Min.X:
		dx = int64(r.Min.X - p.X)
	case p.X >= r.Max.X:
		dx = int64(p.X - r.Max.X + 1)
	}
	switch {
	case p.Y < r.Min.Y:
		dy = int64(r.Min.Y - p.Y)
	case p.Y >= r.Max.Y:
		dy = int64(p.Y - r.Max.Y + 1)
	}
	return dx*dx + dy*dy
}
