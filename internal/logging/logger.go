package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Init initializes the global logger. Logs are appended to logFilePath when
// it is non-empty and copied to console when it is non-nil; with neither the
// logger discards everything. level can be "debug", "info", "warn", "error".
func Init(logFilePath, level string, console io.Writer) (func(), error) {
	// determine level
	l := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		l = zerolog.DebugLevel
	case "info":
		l = zerolog.InfoLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(l)

	var writers []io.Writer
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"})
	}
	var f *os.File
	if logFilePath != "" {
		// Ensure the directory exists before attempting to open the file
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
			return func() {}, fmt.Errorf("failed to create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return func() {}, err
		}
		writers = append(writers, f)
	}
	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	Log = zerolog.New(out).With().Timestamp().Logger()
	// return cleanup func
	return func() {
		if f != nil {
			_ = f.Close()
		}
	}, nil
}

// InitBestEffort is Init for the dispatch path: when the log file cannot be
// opened, logging continues on console (or nowhere) and the error is dropped.
func InitBestEffort(logFilePath, level string, console io.Writer) func() {
	cleanup, err := Init(logFilePath, level, console)
	if err != nil {
		cleanup, _ = Init("", level, console)
	}
	return cleanup
}

// Log is the package-global logger configured by Init
var Log = zerolog.Nop()

// Get returns a pointer to the package-global logger
func Get() *zerolog.Logger {
	return &Log
}
