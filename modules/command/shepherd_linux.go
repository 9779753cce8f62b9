//go:build linux

package command

import (
	"os/exec"
	"syscall"
)

func setSysProcAttribute(c *exec.Cmd, detached bool) {
	c.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	if !detached {
		c.SysProcAttr.Pdeathsig = syscall.SIGTERM
	}
}
