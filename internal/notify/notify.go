package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Urgency levels for notifications
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// AppName is shown as the notification title prefix
const AppName = "Dual Monitor Tools"

// command builds the platform notifier invocation
func command(title, body string, urgency Urgency, icon string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.Command("osascript", "-e", script), nil
	case "windows":
		return exec.Command("msg", "*", "/TIME:10", title+": "+body), nil
	}

	path, err := exec.LookPath("notify-send")
	if err != nil {
		return nil, err
	}
	args := []string{title, body}
	if urgency != "" {
		args = append(args, "--urgency="+string(urgency))
	}
	if icon != "" {
		args = append(args, "--icon="+icon)
	}
	return exec.Command(path, args...), nil
}

// Send shows a desktop notification. It returns once the notifier has
// started and never waits for the user.
func Send(title, body string, urgency Urgency, icon string) error {
	cmd, err := command(title, body, urgency, icon)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Info sends an informational notification
func Info(title, body string) error {
	return Send(title, body, UrgencyNormal, "video-display")
}

// Warning sends a warning notification
func Warning(title, body string) error {
	return Send(title, body, UrgencyLow, "dialog-warning")
}

// Error sends an error notification
func Error(title, body string) error {
	return Send(title, body, UrgencyCritical, "dialog-error")
}

// CursorMode announces a cursor mode change
func CursorMode(mode string) error {
	return Info(AppName, "Cursor mode: "+mode)
}

// WallpaperSet announces a new wallpaper
func WallpaperSet(path string) error {
	return Info(AppName, "Wallpaper updated from "+path)
}

// Notifier adapts Warning to the cursor engine's callback, dropping
// delivery errors
func Notifier(title, body string) {
	_ = Warning(title, body)
}
