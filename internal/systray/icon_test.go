package systray

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/png"
	"testing"

	"github.com/kartoza/dual-monitor-tools/internal/cursor"
)

func TestRenderModeIcon(t *testing.T) {
	for _, mode := range []cursor.Mode{cursor.Free, cursor.Sticky, cursor.Lock} {
		t.Run(mode.String(), func(t *testing.T) {
			img := renderModeIcon(mode)
			if img.Bounds().Dx() != iconSize || img.Bounds().Dy() != iconSize {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			// bottom right corner of the badge is never covered by the letter
			if got := img.RGBAAt(31, 31); got != modeColor(mode) {
				t.Errorf("badge colour = %v, expected %v", got, modeColor(mode))
			}
			if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
				t.Errorf("corner = %v, expected transparent", got)
			}
		})
	}
}

func TestModeIconsDiffer(t *testing.T) {
	free := renderModeIcon(cursor.Free)
	lock := renderModeIcon(cursor.Lock)
	if bytes.Equal(free.Pix, lock.Pix) {
		t.Error("free and lock icons are identical")
	}
}

func TestWrapICO(t *testing.T) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, renderModeIcon(cursor.Sticky)); err != nil {
		t.Fatal(err)
	}
	ico := wrapICO(pngBuf.Bytes(), iconSize)

	if len(ico) != 22+pngBuf.Len() {
		t.Fatalf("len = %d, expected %d", len(ico), 22+pngBuf.Len())
	}
	if binary.LittleEndian.Uint16(ico[2:4]) != 1 || binary.LittleEndian.Uint16(ico[4:6]) != 1 {
		t.Errorf("header = %v", ico[:6])
	}
	if ico[6] != iconSize || ico[7] != iconSize {
		t.Errorf("dimensions = %d x %d", ico[6], ico[7])
	}
	if binary.LittleEndian.Uint32(ico[14:18]) != uint32(pngBuf.Len()) {
		t.Error("size field does not match the PNG length")
	}
	if binary.LittleEndian.Uint32(ico[18:22]) != 22 {
		t.Error("offset field is not 22")
	}
	if _, err := png.Decode(bytes.NewReader(ico[22:])); err != nil {
		t.Errorf("embedded PNG does not decode: %v", err)
	}
}
