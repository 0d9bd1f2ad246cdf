//go:build !windows

package transcribe

import (
	"os"
	"os/exec"
	"syscall"
)

// run the CLI in its own process group so helper processes die with it
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(p *os.Process) error {
	if p == nil {
		return nil
	}
	return syscall.Kill(-p.Pid, syscall.SIGKILL)
}
