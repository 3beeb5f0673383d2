//go:build !unix

package expand

import "os/exec"

func shellPath() string { return "cmd" }
func shellFlag() string { return "/C" }

// configureProcessGroup is a no-op outside Unix: there is no portable
// process-group primitive exposed by os/exec here, so timeout handling
// falls back to killing just the direct child (see killProcessGroup).
func configureProcessGroup(cmd *exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
