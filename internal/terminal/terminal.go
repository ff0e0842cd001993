// Package terminal opens dmt subcommands in a terminal window, for the
// parts of the tool that run as a TUI.
package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Title is the window title given to launched terminals
const Title = "Dual Monitor Tools"

// IsTerminalOnly checks if we're in a terminal-only environment (no graphical display)
func IsTerminalOnly() bool {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		return false
	}

	display := os.Getenv("DISPLAY")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	if display == "" && waylandDisplay == "" {
		return true
	}
	return os.Getenv("XDG_SESSION_TYPE") == "tty"
}

// emulator describes how to ask one terminal emulator to run a command
type emulator struct {
	cmd     string
	argsFmt func(args []string) []string
}

func emulators() []emulator {
	switch runtime.GOOS {
	case "windows":
		return []emulator{
			{"wt", func(args []string) []string {
				return append([]string{"--title", Title}, args...)
			}},
			{"cmd", func(args []string) []string {
				return append([]string{"/c", "start", Title}, args...)
			}},
		}
	case "darwin":
		return []emulator{
			{"open", func(args []string) []string {
				return append([]string{"-a", "Terminal", "--args"}, args...)
			}},
		}
	}
	return []emulator{
		{"foot", func(args []string) []string {
			return append([]string{"--title=" + Title, "-e"}, args...)
		}},
		{"kitty", func(args []string) []string {
			return append([]string{"--title=" + Title}, args...)
		}},
		{"alacritty", func(args []string) []string {
			return append([]string{"--title", Title, "-e"}, args...)
		}},
		{"gnome-terminal", func(args []string) []string {
			return append([]string{"--title=" + Title, "--"}, args...)
		}},
		{"xterm", func(args []string) []string {
			return append([]string{"-T", Title, "-e"}, args...)
		}},
	}
}

// Command builds the command that runs this executable with args in the
// first terminal emulator found on PATH
func Command(args ...string) (*exec.Cmd, error) {
	self, err := os.Executable()
	if err != nil {
		self = "dmt"
	}
	full := append([]string{self}, args...)

	for _, term := range emulators() {
		if _, err := exec.LookPath(term.cmd); err == nil {
			cmd := exec.Command(term.cmd, term.argsFmt(full)...)
			setSysProcAttr(cmd)
			return cmd, nil
		}
	}
	return nil, fmt.Errorf("no supported terminal emulator found")
}

// Open starts args in a new terminal window and returns without waiting
func Open(args ...string) error {
	cmd, err := Command(args...)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
