package systray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"runtime"

	"github.com/kartoza/dual-monitor-tools/internal/cursor"
)

const iconSize = 32

var (
	screenColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	frameColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

// modeColor is the badge colour for each cursor mode
func modeColor(mode cursor.Mode) color.RGBA {
	switch mode {
	case cursor.Sticky:
		return color.RGBA{R: 0xff, G: 0x8c, A: 0xff}
	case cursor.Lock:
		return color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}
	}
	return color.RGBA{R: 0x30, G: 0xb0, B: 0x50, A: 0xff}
}

// Block letters, 5 wide x 7 tall, '#' for filled pixels
var letters = map[cursor.Mode][]string{
	cursor.Free: {
		"#####",
		"#    ",
		"#    ",
		"#### ",
		"#    ",
		"#    ",
		"#    ",
	},
	cursor.Sticky: {
		" ####",
		"#    ",
		"#    ",
		" ### ",
		"    #",
		"    #",
		"#### ",
	},
	cursor.Lock: {
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#####",
	},
}

// renderModeIcon draws two side by side screens with a badge carrying
// the mode's initial
func renderModeIcon(mode cursor.Mode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	for _, r := range []image.Rectangle{image.Rect(1, 6, 16, 20), image.Rect(16, 6, 31, 20)} {
		draw.Draw(dst, r, &image.Uniform{C: frameColor}, image.Point{}, draw.Src)
		draw.Draw(dst, r.Inset(2), &image.Uniform{C: screenColor}, image.Point{}, draw.Src)
	}
	// stand
	draw.Draw(dst, image.Rect(14, 20, 18, 24), &image.Uniform{C: frameColor}, image.Point{}, draw.Src)

	badge := image.Rect(18, 16, 32, 32)
	draw.Draw(dst, badge, &image.Uniform{C: modeColor(mode)}, image.Point{}, draw.Src)

	pattern := letters[mode]
	ox, oy := badge.Min.X+2, badge.Min.Y+1
	for row, line := range pattern {
		for col := 0; col < len(line); col++ {
			if line[col] != '#' {
				continue
			}
			// each pattern pixel is 2x2
			px := image.Rect(ox+col*2, oy+row*2, ox+col*2+2, oy+row*2+2).Intersect(badge)
			draw.Draw(dst, px, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
		}
	}
	return dst
}

// iconBytes returns the encoded tray icon for mode. Windows wants an ICO
// container, the other platforms take PNG directly.
func iconBytes(mode cursor.Mode) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, renderModeIcon(mode)); err != nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return wrapICO(buf.Bytes(), iconSize)
	}
	return buf.Bytes()
}

// wrapICO puts one PNG image into an ICO file
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	// ICONDIR: reserved, type 1 (icon), one image
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	dim := uint8(size)
	if size >= 256 {
		dim = 0
	}
	buf.Write([]byte{dim, dim, 0, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // colour planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(pngData)
	return buf.Bytes()
}
