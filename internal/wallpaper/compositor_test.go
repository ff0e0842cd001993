package wallpaper

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/models"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func sideBySide() []models.Monitor {
	return []models.Monitor{
		{Index: 0, Bounds: image.Rect(0, 0, 1920, 1080), Primary: true},
		{Index: 1, Bounds: image.Rect(1920, 0, 3840, 1080)},
	}
}

func single(w, h int) []models.Monitor {
	return []models.Monitor{{Bounds: image.Rect(0, 0, w, h), Primary: true}}
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// columns returns an image whose red channel is the column index
func columns(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), A: 0xff})
		}
	}
	return img
}

func TestCompositor_StretchAcrossTwoScreens(t *testing.T) {
	img := solid(3840, 1080, red)
	draw.Draw(img, image.Rect(1920, 0, 3840, 1080), &image.Uniform{C: blue}, image.Point{}, draw.Src)

	w := New(sideBySide())
	if err := w.AddImageTo(img, []int{0, 1}, geometry.StretchToFit); err != nil {
		t.Fatalf("AddImageTo: %v", err)
	}

	screens := w.Screens()
	if got := screens[0].SourceRect; got != image.Rect(0, 0, 1920, 1080) {
		t.Errorf("left SourceRect = %v", got)
	}
	if got := screens[1].SourceRect; got != image.Rect(1920, 0, 3840, 1080) {
		t.Errorf("right SourceRect = %v", got)
	}
	for i, m := range screens {
		if m.TargetRect != m.ScreenRect {
			t.Errorf("screen %d TargetRect = %v, expected %v", i, m.TargetRect, m.ScreenRect)
		}
	}

	out := w.CreateWallpaperImage()
	if out.Bounds() != image.Rect(0, 0, 3840, 1080) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	checks := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, red},
		{1919, 540, red},
		{1920, 540, blue},
		{3839, 1079, blue},
	}
	for _, c := range checks {
		if got := out.RGBAAt(c.x, c.y); got != c.expected {
			t.Errorf("pixel (%d,%d) = %v, expected %v", c.x, c.y, got, c.expected)
		}
	}
}

func TestCompositor_UnderStretchBars(t *testing.T) {
	w := New(single(1920, 1080))
	if err := w.AddImageTo(solid(1000, 1000, color.White), []int{0}, geometry.UnderStretch); err != nil {
		t.Fatal(err)
	}

	m := w.Screens()[0]
	if m.Placement() != image.Rect(420, 0, 1500, 1080) {
		t.Errorf("placement = %v, expected (420,0)-(1500,1080)", m.Placement())
	}
	if m.SourceRect != image.Rect(0, 0, 1000, 1000) {
		t.Errorf("SourceRect = %v", m.SourceRect)
	}
	if m.TargetRect != image.Rect(420, 0, 1500, 1080) {
		t.Errorf("TargetRect = %v", m.TargetRect)
	}

	out := w.CreateWallpaperImage()
	black := color.RGBA{A: 0xff}
	for _, x := range []int{0, 419, 1500, 1919} {
		if got := out.RGBAAt(x, 540); got != black {
			t.Errorf("bar pixel x=%d = %v, expected black", x, got)
		}
	}
	for _, x := range []int{420, 960, 1499} {
		if got := out.RGBAAt(x, 540); got.R < 200 {
			t.Errorf("image pixel x=%d = %v, expected white", x, got)
		}
	}
}

func TestCompositor_OverStretchCrops(t *testing.T) {
	w := New(single(1920, 1080))
	if err := w.AddImageTo(solid(1000, 1000, red), []int{0}, geometry.OverStretch); err != nil {
		t.Fatal(err)
	}
	m := w.Screens()[0]
	if m.SourceRect != image.Rect(0, 219, 1000, 781) {
		t.Errorf("SourceRect = %v, expected (0,219)-(1000,781)", m.SourceRect)
	}
	if m.TargetRect != m.ScreenRect {
		t.Errorf("TargetRect = %v", m.TargetRect)
	}
}

func TestCompositor_ZoomAboutSharedCentre(t *testing.T) {
	w := New(sideBySide())
	if err := w.AddImageTo(solid(384, 108, red), []int{0, 1}, geometry.StretchToFit); err != nil {
		t.Fatal(err)
	}

	if err := w.ZoomActiveScreens(2.0); err != nil {
		t.Fatalf("ZoomActiveScreens: %v", err)
	}
	screens := w.Screens()
	if got := screens[0].DestRect; got != image.Rect(960, 270, 1920, 810) {
		t.Errorf("left DestRect = %v", got)
	}
	if got := screens[1].DestRect; got != image.Rect(1920, 270, 2880, 810) {
		t.Errorf("right DestRect = %v", got)
	}
	// zooming in shows the middle of the image on the whole screen
	if screens[0].TargetRect != screens[0].ScreenRect {
		t.Errorf("left TargetRect = %v", screens[0].TargetRect)
	}
	if got := screens[0].SourceRect; got != image.Rect(96, 27, 192, 81) {
		t.Errorf("left SourceRect = %v", got)
	}

	if err := w.ZoomActiveScreens(0.5); err != nil {
		t.Fatal(err)
	}
	for i, m := range screens {
		if m.DestRect != m.ScreenRect {
			t.Errorf("screen %d DestRect = %v after zooming back", i, m.DestRect)
		}
	}
}

func TestCompositor_ZoomErrors(t *testing.T) {
	w := New(sideBySide())
	if err := w.ZoomActiveScreens(2); !errors.Is(err, ErrNoActiveScreens) {
		t.Errorf("no active screens error = %v", err)
	}
	if err := w.SetActiveScreens([]int{0}); err != nil {
		t.Fatal(err)
	}
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1e12} {
		if err := w.ZoomActiveScreens(f); !errors.Is(err, ErrZoomFactor) {
			t.Errorf("factor %v error = %v, expected ErrZoomFactor", f, err)
		}
	}
}

func TestCompositor_RejectedZoomKeepsViewport(t *testing.T) {
	w := New(sideBySide())
	if err := w.AddImageTo(solid(384, 108, red), []int{0, 1}, geometry.StretchToFit); err != nil {
		t.Fatal(err)
	}
	if err := w.ZoomActiveScreens(math.Inf(1)); !errors.Is(err, ErrZoomFactor) {
		t.Fatalf("error = %v, expected ErrZoomFactor", err)
	}
	if err := w.ZoomActiveScreens(2); err != nil {
		t.Fatalf("zoom after a rejected factor: %v", err)
	}
	if got := w.Screens()[0].DestRect; got != image.Rect(960, 270, 1920, 810) {
		t.Errorf("DestRect = %v", got)
	}
}

func TestCompositor_SelectAllScreens(t *testing.T) {
	w := New(sideBySide())
	w.SelectAllScreens()
	if got := w.ActiveScreens(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("active screens = %v, expected [0 1]", got)
	}
	if err := w.AddImage(solid(100, 100, red), geometry.StretchToFit); err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	for i, m := range w.Screens() {
		if !m.HasImage() {
			t.Errorf("screen %d has no image", i)
		}
	}
}

func TestCompositor_MoveShowsContentToTheRight(t *testing.T) {
	w := New(single(100, 100))
	if err := w.AddImageTo(columns(100, 100), []int{0}, geometry.StretchToFit); err != nil {
		t.Fatal(err)
	}

	if err := w.MoveActiveScreens(10, 0); err != nil {
		t.Fatal(err)
	}
	m := w.Screens()[0]
	if m.DestRect != image.Rect(10, 0, 110, 100) {
		t.Errorf("DestRect = %v", m.DestRect)
	}
	if m.SourceRect != image.Rect(10, 0, 100, 100) {
		t.Errorf("SourceRect = %v", m.SourceRect)
	}
	if m.TargetRect != image.Rect(0, 0, 90, 100) {
		t.Errorf("TargetRect = %v", m.TargetRect)
	}

	out := w.CreateWallpaperImage()
	// image column 10 is now at the left edge, the picture moved left
	if got := out.RGBAAt(0, 50); got.R != 10 {
		t.Errorf("pixel (0,50) red = %d, expected 10", got.R)
	}
	if got := out.RGBAAt(95, 50); got != (color.RGBA{A: 0xff}) {
		t.Errorf("pixel (95,50) = %v, expected background", got)
	}
}

func TestCompositor_MoveOffImageDrawsNothing(t *testing.T) {
	w := New(single(100, 100), WithBackground(blue))
	if err := w.AddImageTo(solid(100, 100, red), []int{0}, geometry.StretchToFit); err != nil {
		t.Fatal(err)
	}
	if err := w.MoveActiveScreens(500, 0); err != nil {
		t.Fatal(err)
	}
	if w.Screens()[0].HasImage() {
		t.Error("mapping outside the image still draws")
	}
	if got := w.CreateWallpaperImage().RGBAAt(50, 50); got != blue {
		t.Errorf("pixel = %v, expected background", got)
	}
}

func TestCompositor_IndexErrors(t *testing.T) {
	w := New(sideBySide())
	if err := w.SetActiveScreens([]int{1}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"set", func() error { return w.SetActiveScreens([]int{0, 2}) }},
		{"negative", func() error { return w.SetActiveScreens([]int{-1}) }},
		{"move", func() error { return w.MoveScreens([]int{5}, 1, 1) }},
		{"zoom", func() error { return w.ZoomScreens([]int{2}, 2) }},
		{"add", func() error { return w.AddImageTo(solid(1, 1, red), []int{3}, geometry.Center) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrScreenIndex) {
				t.Errorf("error = %v, expected ErrScreenIndex", err)
			}
			if got := w.ActiveScreens(); len(got) != 1 || got[0] != 1 {
				t.Errorf("active screens = %v, expected unchanged [1]", got)
			}
		})
	}
}

func TestCompositor_AddImageErrors(t *testing.T) {
	w := New(sideBySide())
	if err := w.AddImage(solid(10, 10, red), geometry.Center); !errors.Is(err, ErrNoActiveScreens) {
		t.Errorf("error = %v, expected ErrNoActiveScreens", err)
	}
	if err := w.MoveActiveScreens(1, 0); !errors.Is(err, ErrNoActiveScreens) {
		t.Errorf("move error = %v, expected ErrNoActiveScreens", err)
	}
	_ = w.SetActiveScreens([]int{0})
	if err := w.AddImage(nil, geometry.Center); err == nil {
		t.Error("expected an error for a nil image")
	}
}

func TestCompositor_NegativeDesktopOrigin(t *testing.T) {
	monitors := []models.Monitor{
		{Bounds: image.Rect(-100, 0, 0, 50)},
		{Bounds: image.Rect(0, 0, 100, 50), Primary: true},
	}
	w := New(monitors, WithBackground(blue))
	if w.DesktopRect() != image.Rect(-100, 0, 100, 50) {
		t.Fatalf("DesktopRect = %v", w.DesktopRect())
	}
	if err := w.AddImageTo(solid(100, 50, red), []int{1}, geometry.StretchToFit); err != nil {
		t.Fatal(err)
	}

	out := w.CreateWallpaperImage()
	if out.Bounds() != image.Rect(0, 0, 200, 50) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(50, 25); got != blue {
		t.Errorf("left screen pixel = %v, expected background", got)
	}
	if got := out.RGBAAt(150, 25); got != red {
		t.Errorf("primary screen pixel = %v, expected image", got)
	}
}

func TestCompositor_CenterSmallImage(t *testing.T) {
	w := New(single(100, 100))
	if err := w.AddImageTo(solid(10, 10, red), []int{0}, geometry.Center); err != nil {
		t.Fatal(err)
	}
	m := w.Screens()[0]
	if m.TargetRect != image.Rect(45, 45, 55, 55) {
		t.Errorf("TargetRect = %v", m.TargetRect)
	}
	out := w.CreateWallpaperImage()
	if got := out.RGBAAt(50, 50); got != red {
		t.Errorf("centre pixel = %v", got)
	}
	if got := out.RGBAAt(10, 10); got != (color.RGBA{A: 0xff}) {
		t.Errorf("corner pixel = %v, expected black", got)
	}
}

func TestCompositor_ResetAndClear(t *testing.T) {
	w := New(single(100, 100))
	_ = w.AddImageTo(solid(100, 100, red), []int{0}, geometry.StretchToFit)
	_ = w.MoveActiveScreens(20, 20)

	w.ResetView()
	m := w.Screens()[0]
	if m.DestRect != m.ScreenRect || m.SourceRect != image.Rect(0, 0, 100, 100) {
		t.Errorf("after reset DestRect=%v SourceRect=%v", m.DestRect, m.SourceRect)
	}

	w.ClearScreens()
	if m.HasImage() {
		t.Error("cleared screen still has an image")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected color.RGBA
		wantErr  bool
	}{
		{"#000000", color.RGBA{A: 0xff}, false},
		{"#1A2b3C", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}, false},
		{"fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}

	if s := FormatColor(color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}); s != "#1A2B3C" {
		t.Errorf("FormatColor = %q", s)
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"bicubic", "bilinear", "nearest", "lanczos3", "mitchell"} {
		i, err := ParseInterpolation(name)
		if err != nil {
			t.Errorf("ParseInterpolation(%q): %v", name, err)
			continue
		}
		if i.String() != name {
			t.Errorf("round trip %q -> %q", name, i.String())
		}
	}
	if i, err := ParseInterpolation(""); err != nil || i != Bicubic {
		t.Errorf("empty name = %v, %v", i, err)
	}
	if _, err := ParseInterpolation("sinc"); err == nil {
		t.Error("expected an error for an unknown name")
	}
}
