//go:build !windows

package hook

import "image"

type unsupported struct{}

// New returns the platform interceptor. Global input interception is
// only implemented on Windows; elsewhere every operation reports
// ErrUnsupported so the cursor engine stays in free mode.
func New() Interceptor {
	return unsupported{}
}

// Supported reports whether New returns a working interceptor
func Supported() bool {
	return false
}

func (unsupported) Install(Filter) (Registration, error) {
	return nil, ErrUnsupported
}

func (unsupported) CursorPos() (image.Point, error) {
	return image.Point{}, ErrUnsupported
}

func (unsupported) SetCursorPos(image.Point) error {
	return ErrUnsupported
}

func (unsupported) KeyDown(Key) bool {
	return false
}
