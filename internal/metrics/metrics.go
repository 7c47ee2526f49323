// Package metrics counts dispatch outcomes and can export them as a
// Prometheus textfile, the usual way short-lived processes publish metrics.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 1. Internal State (Source of Truth)
var (
	dispatched   int64
	suppressed   int64
	vibrations   int64
	sounds       int64
	bells        int64
	unavailable  int64
	lastDispatch int64
)

const counterInc int64 = 1

// registry holds only notifier collectors, so a textfile never duplicates
// the exporter's own go_* and process_* series.
var registry = prometheus.NewRegistry()

// 2. Prometheus Collectors
var (
	promDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claude_notifier_dispatches_total",
			Help: "Triggers handled, by outcome",
		},
		[]string{"outcome"},
	)
	promBackendInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claude_notifier_backend_invocations_total",
			Help: "Backend commands started, by backend",
		},
		[]string{"backend"},
	)
	promUnavailable = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claude_notifier_backend_unavailable_total",
			Help: "Attempts that found no usable backend, by kind",
		},
		[]string{"kind"},
	)
	promDispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "claude_notifier_dispatch_duration_seconds",
			Help: "Time spent deciding and starting backends",
			Buckets: []float64{
				0.001,
				0.005,
				0.01,
				0.05,
				0.1,
				0.5,
				1,
			},
		},
	)
	promLastDispatch = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "claude_notifier_last_dispatch_timestamp_seconds",
			Help: "Unix timestamp of the last dispatch that was not suppressed",
		},
	)
)

func init() {
	registry.MustRegister(
		promDispatches,
		promBackendInvocations,
		promUnavailable,
		promDispatchDuration,
		promLastDispatch,
	)
}

// 3. Public API (Updates both Atomic and Prometheus)

// IncDispatched counts a trigger that went on to pick backends.
func IncDispatched() {
	atomic.AddInt64(&dispatched, counterInc)
	promDispatches.WithLabelValues("dispatched").Inc()
}

// IncSuppressed counts a trigger swallowed by the debounce window.
func IncSuppressed() {
	atomic.AddInt64(&suppressed, counterInc)
	promDispatches.WithLabelValues("suppressed").Inc()
}

// IncVibration counts a started vibration command.
func IncVibration(backend string) {
	atomic.AddInt64(&vibrations, counterInc)
	promBackendInvocations.WithLabelValues(backend).Inc()
}

// IncSound counts a started playback command.
func IncSound(backend string) {
	atomic.AddInt64(&sounds, counterInc)
	promBackendInvocations.WithLabelValues(backend).Inc()
}

// IncBell counts a terminal bell fallback.
func IncBell() {
	atomic.AddInt64(&bells, counterInc)
	promBackendInvocations.WithLabelValues("bell").Inc()
}

// IncUnavailable counts an attempt of the given kind ("vibration", "sound"
// or "bell") that found nothing to run.
func IncUnavailable(kind string) {
	atomic.AddInt64(&unavailable, counterInc)
	promUnavailable.WithLabelValues(kind).Inc()
}

// ObserveDispatchDuration records how long a dispatch took, in seconds.
func ObserveDispatchDuration(seconds float64) {
	promDispatchDuration.Observe(seconds)
}

// SetLastDispatch stores the time of the last non-suppressed dispatch.
func SetLastDispatch(t time.Time) {
	atomic.StoreInt64(&lastDispatch, t.Unix())
	promLastDispatch.Set(float64(t.Unix()))
}

// 4. Snapshot

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Dispatched        int64  `json:"dispatched"`
	Suppressed        int64  `json:"suppressed"`
	Vibrations        int64  `json:"vibrations"`
	Sounds            int64  `json:"sounds"`
	Bells             int64  `json:"bells"`
	Unavailable       int64  `json:"unavailable"`
	LastDispatch      int64  `json:"last_dispatch_timestamp"`
	LastDispatchHuman string `json:"last_dispatch_human"`
}

// GetSnapshot returns the current counter values.
func GetSnapshot() StatsSnapshot {
	ts := atomic.LoadInt64(&lastDispatch)
	return StatsSnapshot{
		Dispatched:        atomic.LoadInt64(&dispatched),
		Suppressed:        atomic.LoadInt64(&suppressed),
		Vibrations:        atomic.LoadInt64(&vibrations),
		Sounds:            atomic.LoadInt64(&sounds),
		Bells:             atomic.LoadInt64(&bells),
		Unavailable:       atomic.LoadInt64(&unavailable),
		LastDispatch:      ts,
		LastDispatchHuman: time.Unix(ts, 0).Format(time.RFC3339),
	}
}

// 5. Export

// Gatherer exposes the notifier registry.
func Gatherer() prometheus.Gatherer { return registry }

// WriteTextfile writes the registry in text exposition format to path,
// atomically, creating the directory if needed.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
