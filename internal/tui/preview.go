package tui

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/nfnt/resize"
)

// previewFunc renders img into a cols x rows block of terminal cells
type previewFunc func(img image.Image, cols, rows int) (string, error)

// detectKittySupport checks if the terminal supports Kitty graphics protocol
func detectKittySupport() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") || os.Getenv("TERM_PROGRAM") == "kitty" {
		return true
	}
	return termimg.DetectProtocol() == termimg.Kitty
}

// kittyPreviewer returns a previewer that draws with the Kitty protocol.
// Every frame gets a new image number so the terminal replaces it.
func kittyPreviewer() previewFunc {
	imageID := 1000
	return func(img image.Image, cols, rows int) (string, error) {
		// about 8 pixels per cell is plenty for a preview
		small := resize.Thumbnail(uint(cols*8), uint(rows*16), img, resize.Bilinear)

		var buf bytes.Buffer
		if err := png.Encode(&buf, small); err != nil {
			return "", err
		}
		ti, err := termimg.From(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return "", err
		}
		imageID++
		ti.Protocol(termimg.Kitty).
			Width(cols).
			Height(rows).
			Scale(termimg.ScaleFit).
			ImageNum(imageID)
		return ti.Render()
	}
}
