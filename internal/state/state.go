// Package state persists what a dispatch needs to remember between
// invocations: the last trigger time and the user's config file.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// EnvDir overrides the state directory.
const EnvDir = "CLAUDE_NOTIFIER_DIR"

const (
	dirName           = "claude-notifier"
	configFileName    = "config.yaml"
	timestampFileName = "last_notification"
	logFileName       = "debug.log"
)

// Store is the storage behind debounce and config lookups.
type Store interface {
	// LastTrigger returns the previous trigger time; ok is false when none
	// has been recorded.
	LastTrigger() (t time.Time, ok bool, err error)
	SetLastTrigger(t time.Time) error
	// ReadConfig returns the persisted config document, or nil when absent.
	ReadConfig() ([]byte, error)
}

// DefaultDir returns the state directory. CLAUDE_NOTIFIER_DIR wins, then
// $XDG_CONFIG_HOME/claude-notifier, then ~/.config/claude-notifier. The temp
// dir is the last resort so a missing home never stops a dispatch.
func DefaultDir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, dirName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", dirName)
	}
	return filepath.Join(os.TempDir(), dirName)
}

// FileStore keeps state as plain files in one directory
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory backing the store
func (s *FileStore) Dir() string { return s.dir }

// ConfigPath is where the user's config.yaml lives
func (s *FileStore) ConfigPath() string { return filepath.Join(s.dir, configFileName) }

// LogPath is where the debug log is appended
func (s *FileStore) LogPath() string { return filepath.Join(s.dir, logFileName) }

func (s *FileStore) timestampPath() string { return filepath.Join(s.dir, timestampFileName) }

// LastTrigger reads the single-line timestamp file. The line holds Unix
// milliseconds.
func (s *FileStore) LastTrigger() (time.Time, bool, error) {
	data, err := os.ReadFile(s.timestampPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read last trigger: %w", err)
	}
	line := strings.TrimSpace(string(data))
	if line == "" {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last trigger %q: %w", line, err)
	}
	return time.UnixMilli(ms), true, nil
}

// SetLastTrigger overwrites the timestamp file. Concurrent writers are not
// serialized; the last one wins.
func (s *FileStore) SetLastTrigger(t time.Time) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir state dir: %w", err)
	}
	line := strconv.FormatInt(t.UnixMilli(), 10) + "\n"
	if err := os.WriteFile(s.timestampPath(), []byte(line), 0o644); err != nil {
		return fmt.Errorf("write last trigger: %w", err)
	}
	return nil
}

// ReadConfig returns the contents of config.yaml, or nil if it does not exist
func (s *FileStore) ReadConfig() ([]byte, error) {
	b, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return b, nil
}

// MemoryStore is an in-process Store, used by tests and by preview runs
type MemoryStore struct {
	mu     sync.Mutex
	last   time.Time
	hasRun bool
	config []byte
	writes int
}

// NewMemoryStore returns a MemoryStore holding the given config document
func NewMemoryStore(config []byte) *MemoryStore {
	return &MemoryStore{config: config}
}

func (m *MemoryStore) LastTrigger() (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.hasRun, nil
}

func (m *MemoryStore) SetLastTrigger(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = t
	m.hasRun = true
	m.writes++
	return nil
}

func (m *MemoryStore) ReadConfig() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config, nil
}

// Writes reports how many times SetLastTrigger was called
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
