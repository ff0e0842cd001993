package geometry

import (
	"fmt"
	"image"
	"strings"
)

// Fit decides how an image is laid onto a rectangle whose aspect ratio
// may differ from the image's.
type Fit int

const (
	// Center places the image unscaled in the middle of the rectangle
	Center Fit = iota
	// StretchToFit covers the rectangle exactly, ignoring aspect ratio
	StretchToFit
	// UnderStretch keeps aspect ratio and adds bars (letterbox)
	UnderStretch
	// OverStretch keeps aspect ratio and crops the overflow
	OverStretch
)

var fitNames = map[Fit]string{
	Center:       "center",
	StretchToFit: "stretch",
	UnderStretch: "under",
	OverStretch:  "over",
}

// String returns the config name of the fit
func (f Fit) String() string {
	if name, ok := fitNames[f]; ok {
		return name
	}
	return fmt.Sprintf("fit(%d)", int(f))
}

// ParseFit converts a config name into a Fit.
// Long forms such as "stretch-to-fit", "letterbox" and "crop" are accepted too.
func ParseFit(s string) (Fit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return Center, nil
	case "stretch", "stretch-to-fit", "stretchtofit":
		return StretchToFit, nil
	case "under", "under-stretch", "understretch", "letterbox", "fit":
		return UnderStretch, nil
	case "over", "over-stretch", "overstretch", "crop", "fill":
		return OverStretch, nil
	}
	return Center, fmt.Errorf("unknown fit %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (f Fit) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Fit) UnmarshalText(text []byte) error {
	v, err := ParseFit(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FitRect returns where an image of the given size lands on dest.
func FitRect(fit Fit, size image.Point, dest image.Rectangle) image.Rectangle {
	switch fit {
	case Center:
		return CenterRect(size, dest)
	case UnderStretch:
		return UnderStretchRect(size, dest)
	case OverStretch:
		return OverStretchRect(size, dest)
	default:
		return dest
	}
}

// CenterRect returns a rectangle of the given size sharing dest's centre.
func CenterRect(size image.Point, dest image.Rectangle) image.Rectangle {
	x := dest.Min.X + dest.Dx()/2 - size.X/2
	y := dest.Min.Y + dest.Dy()/2 - size.Y/2
	return image.Rect(x, y, x+size.X, y+size.Y)
}

// UnderStretchRect scales size to fit entirely inside dest, keeping the
// aspect ratio, and centres it along the axis that needs bars.
func UnderStretchRect(size image.Point, dest image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return dest
	}
	dw, dh := int64(dest.Dx()), int64(dest.Dy())
	sw, sh := int64(size.X), int64(size.Y)

	widthFactor := dw * sh
	heightFactor := dh * sw
	switch {
	case widthFactor > heightFactor:
		// vertical bars
		newWidth := atLeastOne(sw * dh / sh)
		bar := (dw - newWidth) / 2
		left := dest.Min.X + int(bar)
		return image.Rect(left, dest.Min.Y, left+int(newWidth), dest.Max.Y)
	case heightFactor > widthFactor:
		// horizontal bars
		newHeight := atLeastOne(sh * dw / sw)
		bar := (dh - newHeight) / 2
		top := dest.Min.Y + int(bar)
		return image.Rect(dest.Min.X, top, dest.Max.X, top+int(newHeight))
	}
	return dest
}

// OverStretchRect scales size to cover dest completely, keeping the
// aspect ratio, and centres the overflow.
func OverStretchRect(size image.Point, dest image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return dest
	}
	dw, dh := int64(dest.Dx()), int64(dest.Dy())
	sw, sh := int64(size.X), int64(size.Y)

	widthFactor := dw * sh
	heightFactor := dh * sw
	switch {
	case widthFactor > heightFactor:
		// clip top and bottom
		newHeight := atLeastOne(sh * dw / sw)
		clip := (newHeight - dh) / 2
		top := dest.Min.Y - int(clip)
		return image.Rect(dest.Min.X, top, dest.Max.X, top+int(newHeight))
	case heightFactor > widthFactor:
		// clip left and right
		newWidth := atLeastOne(sw * dh / sh)
		clip := (newWidth - dw) / 2
		left := dest.Min.X - int(clip)
		return image.Rect(left, dest.Min.Y, left+int(newWidth), dest.Max.Y)
	}
	return dest
}

func atLeastOne(v int64) int64 {
	if v < 1 {
		return 1
	}
	return v
}
