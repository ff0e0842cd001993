//go:build !windows

package wallpaper

// DesktopSupported reports whether NewDesktopSink can succeed
func DesktopSupported() bool {
	return false
}

// NewDesktopSink returns ErrUnsupported outside Windows
func NewDesktopSink(path string, wrap bool) (Sink, error) {
	return nil, ErrUnsupported
}
