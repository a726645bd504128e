package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	duration time.Duration
	pages    int
}

// StatsSnapshot aggregates the extraction samples inside the window.
type StatsSnapshot struct {
	Documents   int     `json:"documents"`
	Pages       int     `json:"pages"`
	MinMs       float64 `json:"min_ms"`
	MaxMs       float64 `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
	P99Ms       float64 `json:"p99_ms"`
	PagesPerSec float64 `json:"pages_per_sec"`
}

// ExtractStats keeps a rolling window of per-document extraction timings.
type ExtractStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewExtractStats(window time.Duration) *ExtractStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ExtractStats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

// Record adds one document's extraction time and page count.
func (s *ExtractStats) Record(d time.Duration, pages int) {
	if d < 0 {
		d = 0
	}
	if pages < 0 {
		pages = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, duration: d, pages: pages})
}

func (s *ExtractStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	ms := make([]float64, 0, len(s.samples))
	var total time.Duration
	pages := 0
	for _, sm := range s.samples {
		ms = append(ms, float64(sm.duration)/float64(time.Millisecond))
		total += sm.duration
		pages += sm.pages
	}
	sort.Float64s(ms)

	snap := StatsSnapshot{
		Documents: len(ms),
		Pages:     pages,
		MinMs:     ms[0],
		MaxMs:     ms[len(ms)-1],
		AvgMs:     float64(total) / float64(time.Millisecond) / float64(len(ms)),
		P50Ms:     percentile(ms, 50),
		P95Ms:     percentile(ms, 95),
		P99Ms:     percentile(ms, 99),
	}
	if total > 0 {
		snap.PagesPerSec = float64(pages) / total.Seconds()
	}
	return snap
}

func (s *ExtractStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}

	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}
