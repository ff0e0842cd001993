package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kartoza/dual-monitor-tools/internal/hook"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
	"github.com/kartoza/dual-monitor-tools/internal/systray"
	"github.com/kartoza/dual-monitor-tools/internal/terminal"
	"github.com/kartoza/dual-monitor-tools/internal/wallpaper"
	"github.com/kartoza/dual-monitor-tools/internal/window"
)

// DisplayServer represents the type of display server in use
type DisplayServer string

const (
	DisplayServerWayland DisplayServer = "wayland"
	DisplayServerX11     DisplayServer = "x11"
	DisplayServerWindows DisplayServer = "windows"
	DisplayServerQuartz  DisplayServer = "quartz"
	DisplayServerUnknown DisplayServer = "unknown"
)

// Dependency represents an external program the tools can call
type Dependency struct {
	Name        string // Command name (e.g., "notify-send")
	Description string // Human-readable description
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
	Error      error  // Error if check failed
}

// Capability is a feature of this build on this machine
type Capability struct {
	Name        string
	Description string
	Available   bool
	Detail      string
}

// DetectDisplayServer determines the windowing system in use
func DetectDisplayServer() DisplayServer {
	switch runtime.GOOS {
	case "windows":
		return DisplayServerWindows
	case "darwin":
		return DisplayServerQuartz
	}
	// Check for Wayland first
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// GetDisplayServerName returns a human-readable name for the display server
func GetDisplayServerName() string {
	switch DetectDisplayServer() {
	case DisplayServerWayland:
		return "Wayland"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerQuartz:
		return "Quartz"
	default:
		return "Unknown"
	}
}

// OptionalDeps lists the helper programs used on this platform
func OptionalDeps() []Dependency {
	switch runtime.GOOS {
	case "windows":
		return []Dependency{
			{Name: "msg", Description: "Desktop notifications"},
		}
	case "darwin":
		return []Dependency{
			{Name: "osascript", Description: "Desktop notifications"},
		}
	}
	return []Dependency{
		{Name: "notify-send", Description: "Desktop notifications"},
	}
}

// Check verifies if a single dependency is available
func Check(dep Dependency) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := exec.LookPath(dep.Name)
	if err != nil {
		result.Available = false
		result.Error = err
	} else {
		result.Available = true
		result.Path = path
	}

	return result
}

// Capabilities reports the features of this build
func Capabilities() []Capability {
	caps := []Capability{
		{
			Name:        "cursor hook",
			Description: "Low-level pointer hook for sticky and lock modes",
			Available:   hook.Supported(),
		},
		{
			Name:        "desktop wallpaper",
			Description: "Setting the composed wallpaper on the desktop",
			Available:   wallpaper.DesktopSupported(),
		},
		{
			Name:        "system tray",
			Description: "Tray icon with cursor mode menu",
			Available:   systray.Available,
		},
		{
			Name:        "window moves",
			Description: "Moving the active window between screens",
			Available:   window.Supported(),
		},
	}

	displays := Capability{Name: "displays", Description: "Monitor enumeration"}
	if monitors, err := monitor.ListMonitors(); err != nil {
		displays.Detail = err.Error()
	} else {
		displays.Available = true
		displays.Detail = fmt.Sprintf("%d found", len(monitors))
	}
	caps = append(caps, displays)

	term := Capability{Name: "terminal emulator", Description: "Opening the wallpaper editor from the tray"}
	if cmd, err := terminal.Command(); err != nil {
		term.Detail = err.Error()
	} else {
		term.Available = true
		term.Detail = cmd.Path
	}
	return append(caps, term)
}

// CheckAll checks capabilities and optional helper programs
func CheckAll() (capabilities []Capability, optional []CheckResult) {
	for _, dep := range OptionalDeps() {
		optional = append(optional, Check(dep))
	}
	return Capabilities(), optional
}

// FormatAll returns a formatted string of all check results
func FormatAll(capabilities []Capability, optional []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Capabilities:\n")
	for _, c := range capabilities {
		status := "✓"
		if !c.Available {
			status = "✗"
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, c.Name, c.Description))
		if c.Detail != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", c.Detail))
		}
	}

	sb.WriteString("\nOptional dependencies:\n")
	for _, r := range optional {
		status := "✓"
		if !r.Available {
			status = "○"
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, r.Dependency.Name, r.Dependency.Description))
		if r.Available {
			sb.WriteString(fmt.Sprintf("      Path: %s\n", r.Path))
		}
	}

	return sb.String()
}
