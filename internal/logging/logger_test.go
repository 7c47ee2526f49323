package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		logFile   string
		level     string
		wantLevel zerolog.Level
	}{
		{"default level", "", "", zerolog.InfoLevel},
		{"debug level", "", "debug", zerolog.DebugLevel},
		{"info level", "", "info", zerolog.InfoLevel},
		{"warn level", "", "warn", zerolog.WarnLevel},
		{"error level", "", "error", zerolog.ErrorLevel},
		{"case insensitive", "", "DEBUG", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup, err := Init(tt.logFile, tt.level, nil)
			if err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer cleanup()

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("expected level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestInitWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "debug.log")

	cleanup, err := Init(logPath, "info", nil)
	if err != nil {
		t.Fatalf("Init() with file failed: %v", err)
	}
	Get().Info().Str("sound", "chime").Msg("trigger received")
	cleanup()

	// a second Init appends rather than truncating
	cleanup, err = Init(logPath, "info", nil)
	if err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	Get().Info().Msg("second trigger")
	cleanup()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created at %s: %v", logPath, err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 appended lines, got %d: %q", len(lines), b)
	}
	if !strings.Contains(lines[0], `"sound":"chime"`) || !strings.Contains(lines[0], `"time"`) {
		t.Fatalf("expected structured entry with timestamp, got %s", lines[0])
	}
}

func TestInitCreatesNestedDir(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "nonexistent", "logs", "debug.log")

	cleanup, err := Init(logPath, "info", nil)
	if err != nil {
		t.Fatalf("Init() failed to create nested log dir: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Errorf("log file was not created at %s", logPath)
	}
}

func TestInitBestEffortFallsBack(t *testing.T) {
	// a regular file where the log directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var console bytes.Buffer
	cleanup := InitBestEffort(filepath.Join(blocker, "debug.log"), "info", &console)
	defer cleanup()

	Get().Info().Msg("still logging")
	if !strings.Contains(console.String(), "still logging") {
		t.Fatalf("expected console output after file failure, got %q", console.String())
	}
}

func TestGet(t *testing.T) {
	cleanup, err := Init("", "info", nil)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer cleanup()

	logger := Get()
	if logger == nil {
		t.Error("Get() returned nil logger")
	}

	// Verify we can use the logger
	logger.Info().Msg("test")
}
