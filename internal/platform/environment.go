// Package platform answers questions about the host (is this a phone, which
// backend commands exist) and starts external processes without waiting on
// them.
package platform

import "os"

// Environment classifies the host for the dispatcher.
type Environment string

const (
	Desktop Environment = "desktop"
	Mobile  Environment = "mobile"
)

// Markers of a Termux install on Android.
const (
	termuxVersionEnv = "TERMUX_VERSION"
	termuxDataDir    = "/data/data/com.termux"
)

// Detector classifies the environment. Zero value uses the real process
// environment and filesystem.
type Detector struct {
	Getenv func(string) string
	Stat   func(string) (os.FileInfo, error)
}

// Detect returns Mobile when the Termux version marker is set or the Termux
// data directory exists, Desktop otherwise.
func (d Detector) Detect() Environment {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	stat := d.Stat
	if stat == nil {
		stat = os.Stat
	}
	if getenv(termuxVersionEnv) != "" {
		return Mobile
	}
	if _, err := stat(termuxDataDir); err == nil {
		return Mobile
	}
	return Desktop
}
