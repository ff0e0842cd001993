// Package hook defines the contract between the cursor engine and the
// platform's low level input interception, plus the platform backends.
package hook

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrUnsupported is returned when the platform offers no global input
// interception.
var ErrUnsupported = errors.New("input interception not supported on this platform")

// ErrAlreadyInstalled is returned when a second filter is installed while
// one is still registered.
var ErrAlreadyInstalled = errors.New("input filter already installed")

// Button identifies a mouse button
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

var buttonNames = []string{"none", "left", "middle", "right", "x1", "x2"}

// String returns the config name of the button
func (b Button) String() string {
	if int(b) >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// ParseButton converts a config name into a Button
func ParseButton(s string) (Button, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range buttonNames {
		if s == name {
			return Button(i), nil
		}
	}
	return ButtonNone, fmt.Errorf("unknown mouse button %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Button) UnmarshalText(text []byte) error {
	v, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Key is a platform virtual key code
type Key uint32

// Common virtual key codes (Windows numbering)
const (
	KeyShift    Key = 0x10
	KeyControl  Key = 0x11
	KeyMenu     Key = 0x12
	KeyLShift   Key = 0xA0
	KeyRShift   Key = 0xA1
	KeyLControl Key = 0xA2
	KeyRControl Key = 0xA3
	KeyLMenu    Key = 0xA4
	KeyRMenu    Key = 0xA5
)

// PointerEvent is a raw pointer move
type PointerEvent struct {
	X, Y int
	// Touch is set when the event was synthesised from touch input
	Touch bool
}

// Point returns the event position
func (e PointerEvent) Point() image.Point {
	return image.Pt(e.X, e.Y)
}

// ButtonEvent is a mouse button transition
type ButtonEvent struct {
	Button Button
	Down   bool
	X, Y   int
}

// KeyEvent is a keyboard transition
type KeyEvent struct {
	Key  Key
	Down bool
}

// Verdict is a filter's answer for one event
type Verdict struct {
	// Suppress drops the original event
	Suppress bool
	// Replace places the cursor at Pos instead of the raw position
	Replace bool
	Pos     image.Point
}

// MoveTo suppresses the event and places the cursor at p
func MoveTo(p image.Point) Verdict {
	return Verdict{Suppress: true, Replace: true, Pos: p}
}

// Pass lets the event through untouched
var Pass = Verdict{}

// Filter inspects input events. Implementations run on the input
// delivery thread and must return quickly.
type Filter interface {
	FilterPointer(ev PointerEvent) Verdict
	FilterButton(ev ButtonEvent) Verdict
	FilterKey(ev KeyEvent) Verdict
}

// Registration is an installed filter. Close is idempotent.
type Registration interface {
	Close() error
}

// Interceptor installs filters and exposes the cursor
type Interceptor interface {
	Install(f Filter) (Registration, error)
	CursorPos() (image.Point, error)
	SetCursorPos(p image.Point) error
	KeyDown(k Key) bool
}
