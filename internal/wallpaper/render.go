package wallpaper

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling filter used when a screen's
// source region is scaled to its target size
type Interpolation int

const (
	Bicubic Interpolation = iota
	Bilinear
	NearestNeighbor
	Lanczos3
	MitchellNetravali
)

var interpolationNames = map[Interpolation]string{
	Bicubic:           "bicubic",
	Bilinear:          "bilinear",
	NearestNeighbor:   "nearest",
	Lanczos3:          "lanczos3",
	MitchellNetravali: "mitchell",
}

func (i Interpolation) String() string {
	if s, ok := interpolationNames[i]; ok {
		return s
	}
	return fmt.Sprintf("interpolation(%d)", int(i))
}

// ParseInterpolation converts a config name into an Interpolation. An
// empty name selects bicubic.
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Bicubic, nil
	}
	for i, name := range interpolationNames {
		if s == name {
			return i, nil
		}
	}
	return Bicubic, fmt.Errorf("unknown interpolation %q", s)
}

func (i Interpolation) filter() resize.InterpolationFunction {
	switch i {
	case Bilinear:
		return resize.Bilinear
	case NearestNeighbor:
		return resize.NearestNeighbor
	case Lanczos3:
		return resize.Lanczos3
	case MitchellNetravali:
		return resize.MitchellNetravali
	}
	return resize.Bicubic
}

// CreateWallpaperImage renders every screen into one bitmap covering the
// desktop. Pixel (0,0) of the result is the desktop's top left corner.
// Screens without an image stay background coloured.
func (w *Compositor) CreateWallpaperImage() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, w.desktop.Dx(), w.desktop.Dy()))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: w.background}, image.Point{}, draw.Src)

	offset := w.desktop.Min
	for i, m := range w.screens {
		if !m.HasImage() {
			continue
		}
		target := m.TargetRect.Sub(offset)
		part := scaleRegion(m.Image, m.SourceRect, target.Size(), w.interp)
		draw.Draw(canvas, target, part, image.Point{}, draw.Over)
		w.logger.Debug("screen rendered",
			"screen", i,
			"source", m.SourceRect,
			"target", m.TargetRect,
		)
	}
	return canvas
}

// scaleRegion crops src (in zero based image coordinates) and resamples
// it to size. The result has its origin at (0,0).
func scaleRegion(img image.Image, src image.Rectangle, size image.Point, interp Interpolation) image.Image {
	src = src.Add(img.Bounds().Min)
	crop := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(crop, crop.Bounds(), img, src.Min, draw.Src)
	if src.Size() == size {
		return crop
	}
	return resize.Resize(uint(size.X), uint(size.Y), crop, interp.filter())
}

// ParseColor reads "#RRGGBB" or "#RGB" into an opaque colour
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor writes c as "#RRGGBB"
func FormatColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
