//go:build unix

package expand

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func shellPath() string { return "/bin/sh" }
func shellFlag() string { return "-c" }

// configureProcessGroup puts the child in its own process group so that
// killProcessGroup can take the whole tree down on timeout, instead of
// leaving orphaned grandchildren behind (a shell substitution that
// itself spawns a pipeline, say).
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = unix.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
