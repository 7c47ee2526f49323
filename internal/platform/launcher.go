package platform

import (
	"fmt"
	"os/exec"
)

// Launcher starts an external command and does not wait for it. A nil
// error only means the process started; its exit status is never observed.
type Launcher interface {
	Launch(name string, args ...string) error
}

// ProcessLauncher starts real processes in their own process group with
// stdio attached to the null device.
type ProcessLauncher struct {
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Launch implements Launcher.
func (l ProcessLauncher) Launch(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = l.Env
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	// reap in the background so long-lived callers (preview) leave no zombies
	go func() { _ = cmd.Wait() }()
	return nil
}
