package platform

import (
	"io"
	"os"

	"github.com/gen2brain/beeep"
	"golang.org/x/term"
)

// bellSequence is the BEL control character.
var bellSequence = []byte{'\a'}

// Bell is the last-resort audible notification.
type Bell interface {
	// Ring reports whether any emission mechanism accepted the bell.
	Ring() bool
}

// TerminalBell tries, in order: stderr when it is a terminal, /dev/tty,
// the system beeper, and finally stdout.
type TerminalBell struct {
	Stderr     *os.File
	Stdout     io.Writer
	IsTerminal func(fd int) bool
	OpenTTY    func() (io.WriteCloser, error)
	Beep       func() error
}

// NewTerminalBell returns a TerminalBell wired to the real process.
func NewTerminalBell() *TerminalBell {
	return &TerminalBell{
		Stderr:     os.Stderr,
		Stdout:     os.Stdout,
		IsTerminal: term.IsTerminal,
		OpenTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		Beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Ring implements Bell.
func (b *TerminalBell) Ring() bool {
	if b.Stderr != nil && b.IsTerminal != nil && b.IsTerminal(int(b.Stderr.Fd())) {
		if _, err := b.Stderr.Write(bellSequence); err == nil {
			return true
		}
	}
	if b.OpenTTY != nil {
		if tty, err := b.OpenTTY(); err == nil {
			_, werr := tty.Write(bellSequence)
			_ = tty.Close()
			if werr == nil {
				return true
			}
		}
	}
	if b.Beep != nil && b.Beep() == nil {
		return true
	}
	if b.Stdout != nil {
		if _, err := b.Stdout.Write(bellSequence); err == nil {
			return true
		}
	}
	return false
}
