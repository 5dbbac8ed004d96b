// Package perf records frame and render timings. It is off unless
// SCRAMBLE_PROFILE is set; summaries go to the log file at a fixed interval
// so profiling never touches the terminal.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/texteffects/scramble/internal/logging"
)

const (
	sampleWindow      = 256
	defaultIntervalMs = 5000
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples [sampleWindow]time.Duration
	idx     int
	full    bool
}

type snapshot struct {
	name  string
	count int64
	avg   time.Duration
	min   time.Duration
	max   time.Duration
	p95   time.Duration
}

var (
	enabled     bool
	logInterval time.Duration
	lastLog     atomic.Int64

	statsMu  sync.Mutex
	statsMap = map[string]*stat{}
)

func init() {
	enabled = envEnabled()
	logInterval = envInterval()
}

// Enabled reports whether profiling is on.
func Enabled() bool { return enabled }

// Time returns a function that records the elapsed time when invoked.
// Typical use: defer perf.Time("view")().
func Time(name string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record captures one duration sample.
func Record(name string, d time.Duration) {
	if !enabled {
		return
	}
	s := getStat(name)
	s.mu.Lock()
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx >= sampleWindow {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()

	maybeFlush()
}

func getStat(name string) *stat {
	statsMu.Lock()
	defer statsMu.Unlock()
	s, ok := statsMap[name]
	if !ok {
		s = &stat{}
		statsMap[name] = s
	}
	return s
}

func maybeFlush() {
	if logInterval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < logInterval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	flush("")
}

// Flush logs a summary of all pending samples immediately.
func Flush(reason string) {
	if !enabled {
		return
	}
	flush(reason)
}

func flush(reason string) {
	prefix := "PERF"
	if strings.TrimSpace(reason) != "" {
		prefix = "PERF " + reason
	}
	for _, s := range snapshotAndReset() {
		logging.Info(
			"%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.name, s.count, s.avg, s.p95, s.min, s.max,
		)
	}
}

func snapshotAndReset() []snapshot {
	statsMu.Lock()
	names := make([]string, 0, len(statsMap))
	stats := make([]*stat, 0, len(statsMap))
	for name, s := range statsMap {
		names = append(names, name)
		stats = append(stats, s)
	}
	statsMu.Unlock()

	out := make([]snapshot, 0, len(stats))
	for i, s := range stats {
		s.mu.Lock()
		if s.count == 0 {
			s.mu.Unlock()
			continue
		}
		snap := snapshot{
			name:  names[i],
			count: s.count,
			avg:   time.Duration(int64(s.total) / s.count),
			min:   s.min,
			max:   s.max,
			p95:   p95(&s.samples, s.idx, s.full),
		}
		s.count = 0
		s.total = 0
		s.min = 0
		s.max = 0
		s.idx = 0
		s.full = false
		s.mu.Unlock()
		out = append(out, snap)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func p95(samples *[sampleWindow]time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = sampleWindow
	}
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, samples[:n])
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	if pos < 0 {
		pos = 0
	}
	return window[pos]
}

func envEnabled() bool {
	raw := strings.TrimSpace(os.Getenv("SCRAMBLE_PROFILE"))
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func envInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("SCRAMBLE_PROFILE_INTERVAL_MS")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
