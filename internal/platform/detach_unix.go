//go:build !windows

package platform

import "syscall"

// detachAttr puts the child in its own process group. The session, and with
// it the controlling terminal, is kept so a detached dispatch can still
// reach /dev/tty.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
