package monitor

import (
	"fmt"
	"image"

	"github.com/kartoza/dual-monitor-tools/internal/models"
	"github.com/kbinani/screenshot"
)

// ListMonitors returns all active monitors in enumeration order
func ListMonitors() ([]models.Monitor, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, fmt.Errorf("no active displays found")
	}

	monitors := make([]models.Monitor, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, models.Monitor{
			Index:    i,
			Name:     fmt.Sprintf("display-%d", i),
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}

	markPrimary(monitors)
	return monitors, nil
}

// markPrimary flags the monitor holding the desktop origin as primary,
// falling back to the first one
func markPrimary(monitors []models.Monitor) {
	if len(monitors) == 0 {
		return
	}
	for i := range monitors {
		if image.Pt(0, 0).In(monitors[i].Bounds) {
			monitors[i].Primary = true
			return
		}
	}
	monitors[0].Primary = true
}

// GetMouseMonitor returns the monitor containing the given cursor
// position
func GetMouseMonitor(monitors []models.Monitor, pos models.CursorPosition) (*models.Monitor, error) {
	for i := range monitors {
		if monitors[i].ContainsCursor(pos) {
			return &monitors[i], nil
		}
	}
	return nil, fmt.Errorf("no monitor contains (%d,%d)", pos.X, pos.Y)
}

// Snapshot enumerates the monitors and wraps them in a Layout
func Snapshot() (*Layout, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return nil, err
	}
	return NewLayout(monitors), nil
}
