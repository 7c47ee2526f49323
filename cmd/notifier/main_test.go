package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/convocli/notifier/internal/config"
	"github.com/convocli/notifier/internal/notify"
	"github.com/convocli/notifier/internal/platform"
	"github.com/convocli/notifier/internal/sound"
	"github.com/convocli/notifier/internal/state"
)

type countingBell struct{ rings int }

func (b *countingBell) Ring() bool { b.rings++; return true }

// setupHookEnv isolates state, sounds and PATH, and swaps in a bell that
// counts instead of beeping.
func setupHookEnv(t *testing.T) (*countingBell, string) {
	t.Helper()
	stateDir := t.TempDir()
	t.Setenv(state.EnvDir, stateDir)
	t.Setenv("PATH", t.TempDir())
	t.Setenv(config.EnvSoundsDir, t.TempDir())
	t.Setenv(config.EnvPreview, "")
	t.Setenv(config.EnvMode, "")
	t.Setenv(config.EnvDebug, "")
	t.Setenv(config.EnvMetricsFile, "")

	bell := &countingBell{}
	oldDispatcher := newDispatcher
	newDispatcher = func(s state.Store, dir string) *notify.Dispatcher {
		d := oldDispatcher(s, dir)
		d.Bell = bell
		d.Detector = platform.Detector{
			Getenv: func(string) string { return "" },
			Stat:   func(string) (os.FileInfo, error) { return nil, os.ErrNotExist },
		}
		return d
	}
	oldSleep := sleepHook
	sleepHook = func(time.Duration) {}
	hookForeground = false
	t.Cleanup(func() {
		newDispatcher = oldDispatcher
		sleepHook = oldSleep
		rootCmd.SetOut(nil)
	})
	return bell, stateDir
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	code := execute()
	return code, buf.String()
}

func TestHookDetachesAndReturns(t *testing.T) {
	bell, _ := setupHookEnv(t)
	var spawnedID string
	old := spawnWorker
	spawnWorker = func(id string) error { spawnedID = id; return nil }
	t.Cleanup(func() { spawnWorker = old })

	if code, _ := run(t); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if spawnedID == "" {
		t.Fatal("expected a detached worker with a trigger id")
	}
	if bell.rings != 0 {
		t.Fatal("hook process must not dispatch itself when the worker started")
	}
}

func TestHookIgnoresStrayArguments(t *testing.T) {
	for _, args := range [][]string{
		{"Notification"},
		{"--event", "stop"},
		{"--event=stop", "extra", "words"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			setupHookEnv(t)
			spawned := 0
			old := spawnWorker
			spawnWorker = func(string) error { spawned++; return nil }
			t.Cleanup(func() { spawnWorker = old })

			if code, out := run(t, args...); code != 0 {
				t.Fatalf("expected exit 0, got %d: %s", code, out)
			}
			if spawned != 1 {
				t.Fatalf("expected one detached worker, got %d", spawned)
			}
		})
	}
}

func TestForegroundHookIgnoresUnknownFlag(t *testing.T) {
	bell, _ := setupHookEnv(t)
	if code, out := run(t, "--foreground", "--event", "stop"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out)
	}
	if bell.rings != 1 {
		t.Fatalf("expected inline dispatch, got %d rings", bell.rings)
	}
}

type recordingLauncher struct {
	env  []string
	name string
	args []string
	err  error
}

func (l *recordingLauncher) Launch(name string, args ...string) error {
	l.name, l.args = name, args
	return l.err
}

func TestSpawnDetachedWorkerReexecsDispatch(t *testing.T) {
	rec := &recordingLauncher{}
	old := workerLauncher
	workerLauncher = func(env []string) platform.Launcher {
		rec.env = env
		return rec
	}
	t.Cleanup(func() { workerLauncher = old })

	if err := spawnDetachedWorker("trigger-42"); err != nil {
		t.Fatalf("spawnDetachedWorker: %v", err)
	}
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	if rec.name != exe {
		t.Fatalf("expected re-exec of %q, got %q", exe, rec.name)
	}
	if !slices.Equal(rec.args, []string{"dispatch"}) {
		t.Fatalf("expected dispatch subcommand, got %v", rec.args)
	}
	if !slices.Contains(rec.env, envTriggerID+"=trigger-42") {
		t.Fatalf("worker env missing trigger id: %v", rec.env)
	}
	if !slices.Contains(rec.env, "PATH="+os.Getenv("PATH")) {
		t.Fatal("worker env should inherit the hook environment")
	}
}

func TestHookDispatchesInlineWhenWorkerCannotStart(t *testing.T) {
	bell, _ := setupHookEnv(t)
	old := workerLauncher
	workerLauncher = func([]string) platform.Launcher {
		return &recordingLauncher{err: errors.New("fork: resource temporarily unavailable")}
	}
	t.Cleanup(func() { workerLauncher = old })

	if code, _ := run(t); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if bell.rings != 1 {
		t.Fatalf("expected inline dispatch, got %d rings", bell.rings)
	}
}

func TestHookNoBackendsExitsZeroAndRingsBell(t *testing.T) {
	bell, stateDir := setupHookEnv(t)

	if code, _ := run(t, "--foreground"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if bell.rings != 1 {
		t.Fatalf("expected bell fallback, got %d rings", bell.rings)
	}

	log, err := os.ReadFile(filepath.Join(stateDir, "debug.log"))
	if err != nil {
		t.Fatalf("expected debug log: %v", err)
	}
	for _, want := range []string{"trigger received", `"mode":"auto"`, `"belled":true`} {
		if !strings.Contains(string(log), want) {
			t.Errorf("debug log missing %q:\n%s", want, log)
		}
	}
	if _, err := os.Stat(filepath.Join(stateDir, "last_notification")); err != nil {
		t.Fatalf("expected timestamp file: %v", err)
	}
}

func TestHookFallsBackInlineWhenSpawnFails(t *testing.T) {
	bell, stateDir := setupHookEnv(t)
	old := spawnWorker
	spawnWorker = func(string) error { return errors.New("exec format error") }
	t.Cleanup(func() { spawnWorker = old })

	if code, _ := run(t); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if bell.rings != 1 {
		t.Fatalf("expected inline dispatch, got %d rings", bell.rings)
	}
	log, _ := os.ReadFile(filepath.Join(stateDir, "debug.log"))
	if !strings.Contains(string(log), "could not detach") {
		t.Fatalf("expected spawn failure in debug log:\n%s", log)
	}
}

func TestDispatchCommandDebounces(t *testing.T) {
	bell, _ := setupHookEnv(t)
	t.Setenv(envTriggerID, "trigger-1")

	for i := 0; i < 2; i++ {
		if code, _ := run(t, "dispatch"); code != 0 {
			t.Fatalf("run %d: expected exit 0, got %d", i, code)
		}
	}
	if bell.rings != 1 {
		t.Fatalf("expected second trigger to be debounced, got %d rings", bell.rings)
	}
}

func TestDispatchHonoursConfigFile(t *testing.T) {
	bell, stateDir := setupHookEnv(t)
	t.Setenv(config.EnvDebug, "false")
	doc := "mode: vibrate-only\nvibration_duration: 400\n"
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	if code, _ := run(t, "dispatch"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if bell.rings != 1 {
		t.Fatalf("expected bell for vibrate-only without termux-vibrate, got %d", bell.rings)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "debug.log")); err == nil {
		t.Fatal("debug log should be disabled")
	}
}

func TestDispatchWritesMetricsTextfile(t *testing.T) {
	setupHookEnv(t)
	prom := filepath.Join(t.TempDir(), "notifier.prom")
	t.Setenv(config.EnvMetricsFile, prom)

	if code, _ := run(t, "dispatch"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	b, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("expected metrics textfile: %v", err)
	}
	if !strings.Contains(string(b), "claude_notifier_dispatches_total") {
		t.Fatalf("unexpected textfile:\n%s", b)
	}
}

func TestPreviewPlaysEachRequestedSound(t *testing.T) {
	bell, stateDir := setupHookEnv(t)

	code, out := run(t, "preview", "--mode", "sound-only", "bell", "thock")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out)
	}
	for _, want := range []string{"Classic bell tone", "Deep mechanical keyboard thock", "2 bell fallbacks"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output missing %q:\n%s", want, out)
		}
	}
	// no assets and no players: each sound falls back to the bell, and
	// preview is never debounced
	if bell.rings != 2 {
		t.Fatalf("expected 2 rings, got %d", bell.rings)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "last_notification")); err == nil {
		t.Fatal("preview must not record a trigger time")
	}
}

func TestPreviewRejectsUnknownSound(t *testing.T) {
	setupHookEnv(t)
	code, out := run(t, "preview", "--mode", "sound-only", "airhorn")
	if code == 0 {
		t.Fatal("expected failure for unknown sound")
	}
	if !strings.Contains(out, "unknown sound") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSoundsListsCatalog(t *testing.T) {
	setupHookEnv(t)
	dir := t.TempDir()
	t.Setenv(config.EnvSoundsDir, dir)
	if err := os.WriteFile(sound.Path(dir, "chime"), []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out := run(t, "sounds")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, e := range sound.Catalog() {
		if !strings.Contains(out, e.Name) {
			t.Errorf("sounds output missing %q", e.Name)
		}
	}
	if !strings.Contains(out, "(selected)") {
		t.Errorf("expected default sound to be marked selected:\n%s", out)
	}
}

func TestStatusReportsBackends(t *testing.T) {
	_, stateDir := setupHookEnv(t)
	code, out := run(t, "status")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{stateDir, "termux-vibrate", "paplay", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}
