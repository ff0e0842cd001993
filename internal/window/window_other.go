//go:build !windows

package window

// Supported reports whether Apply can move windows here
func Supported() bool {
	return false
}

// Apply returns ErrUnsupported outside Windows
func Apply(a Action, layout Layout) error {
	return ErrUnsupported
}
