//go:build !windows && !linux

package command

import (
	"os/exec"
	"syscall"
)

func setSysProcAttribute(c *exec.Cmd, _ bool) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
