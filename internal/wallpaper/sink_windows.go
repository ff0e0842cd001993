//go:build windows

package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

const (
	spiSetDeskWallpaper  = 0x0014
	spifUpdateIniFile    = 0x01
	spifSendWinIniChange = 0x02
)

// DesktopSupported reports whether NewDesktopSink can succeed
func DesktopSupported() bool {
	return procSystemParametersInfoW.Find() == nil
}

type desktopSink struct {
	FileSink
}

// NewDesktopSink returns a sink that saves the wallpaper as a BMP at path
// and makes it the tiled desktop wallpaper
func NewDesktopSink(path string, wrap bool) (Sink, error) {
	if !DesktopSupported() {
		return nil, ErrUnsupported
	}
	if path == "" {
		return nil, errors.New("no wallpaper path configured")
	}
	if !strings.EqualFold(filepath.Ext(path), ".bmp") {
		path += ".bmp"
	}
	return &desktopSink{FileSink{Path: path, Wrap: wrap}}, nil
}

// SetWallpaper writes the bitmap then points the desktop at it. A tiled
// wallpaper starts at the primary screen's origin and repeats across
// every monitor. If the desktop refuses the change the previous bitmap
// and registry values are put back.
func (s *desktopSink) SetWallpaper(img *image.RGBA, origin image.Point) error {
	commit := desktopCommit{setStyle: setTiled, activate: activate}
	return commit.run(s.arrange(img, origin), s.Path)
}

func activate(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("invalid wallpaper path: %w", err)
	}
	ret, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendWinIniChange,
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfo failed: %w", callErr)
	}
	return nil
}

// setTiled selects the tiled style and returns a function restoring the
// values it replaced
func setTiled() (func() error, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return nil, fmt.Errorf("failed to open desktop settings: %w", err)
	}
	defer key.Close()

	values := []struct{ name, tiled string }{
		{"TileWallpaper", "1"},
		{"WallpaperStyle", "0"},
	}
	old := make(map[string]*string, len(values))
	for _, v := range values {
		prev, _, err := key.GetStringValue(v.name)
		switch {
		case err == nil:
			old[v.name] = &prev
		case errors.Is(err, registry.ErrNotExist):
			old[v.name] = nil
		default:
			return nil, fmt.Errorf("failed to read %s: %w", v.name, err)
		}
	}

	restore := func() error {
		key, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
		if err != nil {
			return fmt.Errorf("failed to restore desktop settings: %w", err)
		}
		defer key.Close()
		var errs []error
		for name, prev := range old {
			if prev == nil {
				if err := key.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
					errs = append(errs, err)
				}
				continue
			}
			errs = append(errs, key.SetStringValue(name, *prev))
		}
		return errors.Join(errs...)
	}

	for _, v := range values {
		if err := key.SetStringValue(v.name, v.tiled); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to set %s: %w", v.name, err), restore())
		}
	}
	return restore, nil
}
