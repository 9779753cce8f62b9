//go:build windows

package command

import "os/exec"

func setSysProcAttribute(c *exec.Cmd, detached bool) {
	// placeholders
}
