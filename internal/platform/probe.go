package platform

import (
	"os/exec"
	"strconv"
)

// VibrateCommand is the only recognized vibration backend.
const VibrateCommand = "termux-vibrate"

// Player is a sound playback backend.
type Player struct {
	Name string
	// Path is filled in by the probe once the command is found.
	Path string
	// lead holds arguments placed before the sound file.
	lead []string
}

// Args returns the arguments that play file.
func (p Player) Args(file string) []string {
	args := make([]string, 0, len(p.lead)+1)
	args = append(args, p.lead...)
	return append(args, file)
}

// Players lists the playback backends in priority order.
var Players = []Player{
	{Name: "paplay"},
	{Name: "aplay", lead: []string{"-q"}},
	{Name: "afplay"},
	{Name: "termux-media-player", lead: []string{"play"}},
}

// VibrateArgs returns the termux-vibrate arguments for a duration in ms
func VibrateArgs(durationMS int) []string {
	return []string{"-d", strconv.Itoa(durationMS)}
}

// Probe reports which backends exist on this host. There is one method per
// backend kind.
type Probe interface {
	// Vibrator returns the path of the vibration command.
	Vibrator() (string, bool)
	// Player returns the first playback backend present.
	Player() (Player, bool)
}

// PathProbe looks backends up on $PATH
type PathProbe struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

func (p PathProbe) lookPath(name string) (string, bool) {
	lp := p.LookPath
	if lp == nil {
		lp = exec.LookPath
	}
	path, err := lp(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// Vibrator implements Probe.
func (p PathProbe) Vibrator() (string, bool) {
	return p.lookPath(VibrateCommand)
}

// Player implements Probe.
func (p PathProbe) Player() (Player, bool) {
	for _, pl := range Players {
		if path, ok := p.lookPath(pl.Name); ok {
			pl.Path = path
			return pl, true
		}
	}
	return Player{}, false
}

// AvailablePlayers returns every playback backend present, in priority
// order. Used for diagnostics; dispatch only ever uses the first.
func (p PathProbe) AvailablePlayers() []Player {
	var out []Player
	for _, pl := range Players {
		if path, ok := p.lookPath(pl.Name); ok {
			pl.Path = path
			out = append(out, pl)
		}
	}
	return out
}
