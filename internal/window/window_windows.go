//go:build windows

package window

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procShowWindow          = user32.NewProc("ShowWindow")
	procIsZoomed            = user32.NewProc("IsZoomed")
)

const (
	swMaximize = 3
	swMinimize = 6
	swRestore  = 9

	swpNoZOrder    = 0x0004
	swpNoActivate  = 0x0010
	swpNoOwnerZOrd = 0x0200
)

// Supported reports whether Apply can move windows here
func Supported() bool {
	return procSetWindowPos.Find() == nil
}

// Apply runs a on the foreground window. A maximised window moved to
// another screen is maximised again once it arrives.
func Apply(a Action, layout Layout) error {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ErrNoWindow
	}

	zoomed := isZoomed(hwnd)
	switch a {
	case Minimise:
		showWindow(hwnd, swMinimize)
		return nil
	case Maximise:
		if zoomed {
			showWindow(hwnd, swRestore)
		} else {
			showWindow(hwnd, swMaximize)
		}
		return nil
	}

	if zoomed {
		showWindow(hwnd, swRestore)
	}
	r, err := windowRect(hwnd)
	if err != nil {
		return err
	}
	target, err := Placement(layout, r, a)
	if err != nil {
		return err
	}
	if err := setWindowRect(hwnd, target); err != nil {
		return err
	}
	if zoomed && (a == NextScreen || a == PrevScreen) {
		showWindow(hwnd, swMaximize)
	}
	return nil
}

func isZoomed(hwnd uintptr) bool {
	ret, _, _ := procIsZoomed.Call(hwnd)
	return ret != 0
}

func showWindow(hwnd uintptr, cmd int) {
	procShowWindow.Call(hwnd, uintptr(cmd))
}

func windowRect(hwnd uintptr) (image.Rectangle, error) {
	var r windows.Rect
	ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return image.Rectangle{}, fmt.Errorf("GetWindowRect failed: %w", err)
	}
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}

func setWindowRect(hwnd uintptr, r image.Rectangle) error {
	ret, _, err := procSetWindowPos.Call(hwnd, 0,
		uintptr(r.Min.X), uintptr(r.Min.Y), uintptr(r.Dx()), uintptr(r.Dy()),
		swpNoZOrder|swpNoActivate|swpNoOwnerZOrd)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}
