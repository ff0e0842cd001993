package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupported is returned when the platform has no wallpaper setter
var ErrUnsupported = errors.New("setting the desktop wallpaper is not supported on this platform")

// Sink receives finished wallpapers. origin is the virtual desktop
// coordinate of the image's top left pixel.
type Sink interface {
	SetWallpaper(img *image.RGBA, origin image.Point) error
	SaveWallpaperToFile(img *image.RGBA, path string) error
}

// FileSink writes wallpapers to disk. SetWallpaper writes to Path.
type FileSink struct {
	Path string
	// Wrap rotates the image so the desktop origin is pixel (0,0)
	Wrap bool
}

// SetWallpaper writes img to s.Path
func (s FileSink) SetWallpaper(img *image.RGBA, origin image.Point) error {
	if s.Path == "" {
		return errors.New("no output path configured")
	}
	return s.SaveWallpaperToFile(s.arrange(img, origin), s.Path)
}

// arrange applies Wrap when the sink asks for it
func (s FileSink) arrange(img *image.RGBA, origin image.Point) *image.RGBA {
	if !s.Wrap {
		return img
	}
	return Wrap(img, img.Bounds().Sub(img.Bounds().Min).Add(origin))
}

// SaveWallpaperToFile writes img to path, encoded by its extension
func (s FileSink) SaveWallpaperToFile(img *image.RGBA, path string) error {
	return writeImageFile(img, path)
}

// encoderFor picks an encoder from the file extension
func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Encode, nil
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported wallpaper format %q", filepath.Ext(path))
}

// writeImageFile encodes into a temporary file next to path and renames
// it into place, so a failed write leaves any previous file untouched.
func writeImageFile(img image.Image, path string) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wallpaper-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode wallpaper: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write wallpaper: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save wallpaper: %w", err)
	}
	return nil
}
