package models

import "image"

// Monitor represents a display attached to the system, positioned in
// virtual desktop coordinates
type Monitor struct {
	Index    int             `json:"index"`
	Name     string          `json:"name"`
	Bounds   image.Rectangle `json:"bounds"`
	WorkArea image.Rectangle `json:"work_area"`
	Primary  bool            `json:"primary"`
	// Focused marks the monitor holding the cursor
	Focused bool `json:"focused,omitempty"`
}

// Width returns the monitor width in pixels
func (m *Monitor) Width() int {
	return m.Bounds.Dx()
}

// Height returns the monitor height in pixels
func (m *Monitor) Height() int {
	return m.Bounds.Dy()
}

// CursorPosition represents the current cursor position
type CursorPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point converts the position to an image.Point
func (c CursorPosition) Point() image.Point {
	return image.Pt(c.X, c.Y)
}

// ContainsCursor checks if the monitor contains the given cursor position
func (m *Monitor) ContainsCursor(pos CursorPosition) bool {
	return pos.Point().In(m.Bounds)
}
