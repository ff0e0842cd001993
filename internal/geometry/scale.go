// Package geometry holds the integer coordinate mapping shared by the
// cursor engine and the wallpaper compositor.
package geometry

import (
	"errors"
	"image"
)

// ErrInvalidMapping is returned when a source interval or rectangle has
// zero extent, so no affine mapping can be derived from it.
var ErrInvalidMapping = errors.New("invalid mapping: zero-sized source")

// ScaleDest maps s3 from the interval [s1,s2] onto [d1,d2].
// The result is rounded to the nearest integer.
func ScaleDest(s1, s2, d1, d2, s3 int) (int, error) {
	den := int64(s2) - int64(s1)
	if den == 0 {
		return 0, ErrInvalidMapping
	}
	num := (int64(s3) - int64(s1)) * (int64(d2) - int64(d1))
	if den < 0 {
		num, den = -num, -den
	}
	// round half up: floor((2*num + den) / (2*den))
	return d1 + int(floorDiv(2*num+den, 2*den)), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CalcDestRect maps src2 into the space where src1 corresponds to dest1.
func CalcDestRect(src1, dest1, src2 image.Rectangle) (image.Rectangle, error) {
	minPt, err := CalcDestPoint(src1, dest1, src2.Min)
	if err != nil {
		return image.Rectangle{}, err
	}
	maxPt, err := CalcDestPoint(src1, dest1, src2.Max)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rectangle{Min: minPt, Max: maxPt}, nil
}

// CalcDestPoint maps p into the space where src1 corresponds to dest1.
func CalcDestPoint(src1, dest1 image.Rectangle, p image.Point) (image.Point, error) {
	x, err := ScaleDest(src1.Min.X, src1.Max.X, dest1.Min.X, dest1.Max.X, p.X)
	if err != nil {
		return image.Point{}, err
	}
	y, err := ScaleDest(src1.Min.Y, src1.Max.Y, dest1.Min.Y, dest1.Max.Y, p.Y)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// Scaler is a one dimensional mapping fixed at construction.
type Scaler struct {
	s1, s2, d1, d2 int
}

// NewScaler returns a Scaler mapping [s1,s2] onto [d1,d2].
func NewScaler(s1, s2, d1, d2 int) (Scaler, error) {
	if s1 == s2 {
		return Scaler{}, ErrInvalidMapping
	}
	return Scaler{s1: s1, s2: s2, d1: d1, d2: d2}, nil
}

// DestFromSrc maps a source coordinate into the destination interval.
func (s Scaler) DestFromSrc(v int) int {
	d, err := ScaleDest(s.s1, s.s2, s.d1, s.d2, v)
	if err != nil {
		return s.d1
	}
	return d
}

// RectScaler maps points and rectangles from one rectangle onto another,
// one Scaler per axis.
type RectScaler struct {
	X, Y Scaler
}

// NewRectScaler returns a RectScaler taking from onto to. Both sides of
// from must have extent.
func NewRectScaler(from, to image.Rectangle) (RectScaler, error) {
	x, err := NewScaler(from.Min.X, from.Max.X, to.Min.X, to.Max.X)
	if err != nil {
		return RectScaler{}, err
	}
	y, err := NewScaler(from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y)
	if err != nil {
		return RectScaler{}, err
	}
	return RectScaler{X: x, Y: y}, nil
}

// Point maps p
func (s RectScaler) Point(p image.Point) image.Point {
	return image.Pt(s.X.DestFromSrc(p.X), s.Y.DestFromSrc(p.Y))
}

// Rect maps both corners of r
func (s RectScaler) Rect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: s.Point(r.Min), Max: s.Point(r.Max)}
}
