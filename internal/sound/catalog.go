// Package sound holds the fixed catalog of notification sounds and resolves
// catalog names to files on disk.
package sound

import (
	"errors"
	"os"
	"path/filepath"
)

// EnvPluginRoot is set by the assistant for plugin hooks.
const EnvPluginRoot = "CLAUDE_PLUGIN_ROOT"

// Default is substituted for unknown or missing sounds.
const Default = "chime"

// ErrUnavailable means neither the requested sound nor the default exists.
var ErrUnavailable = errors.New("no sound asset available")

// Entry is one named asset in the catalog.
type Entry struct {
	Name        string
	Description string
}

var catalog = []Entry{
	{"bell", "Classic bell tone"},
	{"chime", "Pleasant high chime (default)"},
	{"subtle", "Very short, quiet pop"},
	{"complete", "Ascending completion melody"},
	{"click", "Single keyboard key click"},
	{"clicks", "Multiple keyboard key clicks (typing)"},
	{"thock", "Deep mechanical keyboard thock"},
	{"thocks", "Several thocks in a row (typing)"},
	{"mech", "Mechanical keyboard switch"},
	{"mechs", "Mechanical keyboard typing burst"},
}

// Catalog returns the catalog in display order. The slice is a copy.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Path returns the asset path for a catalog name inside dir
func Path(dir, name string) string {
	return filepath.Join(dir, name+".wav")
}

// Resolve maps a requested sound to an existing file in dir. Names outside
// the catalog, and catalog names whose file is missing, fall back to the
// default. The returned name is the one actually used.
func Resolve(dir, name string) (string, string, error) {
	if _, ok := Lookup(name); ok {
		if p := Path(dir, name); fileExists(p) {
			return name, p, nil
		}
	}
	if p := Path(dir, Default); fileExists(p) {
		return Default, p, nil
	}
	return "", "", ErrUnavailable
}

// DefaultDir locates the sounds directory: $CLAUDE_PLUGIN_ROOT/sounds when
// set, otherwise a sounds directory beside the executable or one level up.
func DefaultDir() string {
	if root := os.Getenv(EnvPluginRoot); root != "" {
		return filepath.Join(root, "sounds")
	}
	exe, err := os.Executable()
	if err != nil {
		return "sounds"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	binDir := filepath.Dir(exe)
	candidates := []string{
		filepath.Join(binDir, "sounds"),
		filepath.Join(filepath.Dir(binDir), "sounds"),
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			return c
		}
	}
	return candidates[0]
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
