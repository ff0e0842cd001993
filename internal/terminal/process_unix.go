//go:build !windows

package terminal

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr detaches the terminal from our process group so closing
// the tray does not take the editor with it
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
