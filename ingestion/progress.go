package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker writes "Progress: n/total" lines while a batch is processed.
type ProgressTracker struct {
	writer   io.Writer
	total    int
	interval int
	done     int
	reported int
	started  time.Time
	running  bool
	mu       sync.Mutex
}

// NewProgressTracker creates a tracker that reports every interval documents.
// An interval below 1 reports every document.
func NewProgressTracker(writer io.Writer, total, interval int) *ProgressTracker {
	if interval < 1 {
		interval = 1
	}
	return &ProgressTracker{
		writer:   writer,
		total:    total,
		interval: interval,
	}
}

// Start resets the counters and starts the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Increment records delta more finished documents.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = min(p.done+delta, p.total)
	if p.done-p.reported >= p.interval {
		p.report()
		p.reported = p.done
	}
}

// Finish writes the final line. Calling it before Start does nothing.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = p.total
	if p.reported != p.done || p.total == 0 {
		p.report()
	}
	p.running = false
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started.IsZero() {
		return 0
	}
	return time.Since(p.started)
}

// report must be called with the lock held.
func (p *ProgressTracker) report() {
	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.writer, "Progress: %d/%d (%.0f%%)\n", p.done, p.total, percentage)
}
