// Package profiler - Operation timing and memory reporting for the CLI
// and benchmark suite.
//
// Fill runs are short-lived batch work, so the profiler keeps a rolling
// window of operation durations plus the latest runtime.MemStats and
// emits periodic status lines while running. The algorithm packages
// never import it.
package profiler

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
)

// Profiler tracks named operation timings and system memory while a
// fill batch runs. All methods are safe for concurrent use.
type Profiler struct {
	reportInterval time.Duration
	maxSamples     int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	startTime time.Time
	running   bool

	memStats    runtime.MemStats
	lastGCCount uint32

	operations map[string]*TimeTracker
}

// TimeTracker keeps a rolling window of durations for one operation.
type TimeTracker struct {
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// Options configures the profiler.
type Options struct {
	// ReportInterval specifies how often to emit status reports (default: 2s)
	ReportInterval time.Duration
	// MaxSamples specifies maximum durations kept per operation (default: 600)
	MaxSamples int
}

// New creates a profiler with the specified options.
//
// Arguments:
// - opts: Configuration options for the profiler
//
// Returns:
// - A configured Profiler instance
func New(opts Options) *Profiler {
	if opts.ReportInterval == 0 {
		opts.ReportInterval = 2 * time.Second
	}
	if opts.MaxSamples == 0 {
		opts.MaxSamples = 600
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Profiler{
		reportInterval: opts.ReportInterval,
		maxSamples:     opts.MaxSamples,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
		operations:     make(map[string]*TimeTracker),
	}
}

// Start begins periodic status reporting. Safe to call more than once.
func (p *Profiler) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.startTime = time.Now()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.reportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.emitStatusReport()
			}
		}
	}()
}

// Stop ends reporting and waits for the reporting goroutine.
func (p *Profiler) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
//
// @example
// done := prof.StartOperation("fill")
// err := filler.Fill(ctx, img, mask)
// done()
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.recordOperationTime(name, time.Since(start))
	}
}

// recordOperationTime folds one duration into the operation's window.
func (p *Profiler) recordOperationTime(name string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operations[name]
	if !exists {
		tracker = &TimeTracker{
			minTime: duration,
			maxTime: duration,
		}
		p.operations[name] = tracker
	}

	tracker.durations = append(tracker.durations, duration)
	if len(tracker.durations) > p.maxSamples {
		tracker.totalTime -= tracker.durations[0]
		tracker.durations = tracker.durations[1:]
	}

	tracker.totalTime += duration
	tracker.count++

	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// emitStatusReport logs uptime, memory, GC, and operation timings.
func (p *Profiler) emitStatusReport() {
	p.mu.Lock()
	defer p.mu.Unlock()

	runtime.ReadMemStats(&p.memStats)

	log.Printf("profiler: uptime=%v goroutines=%d heap=%s sys=%s",
		time.Since(p.startTime).Truncate(time.Millisecond),
		runtime.NumGoroutine(),
		formatBytes(p.memStats.HeapAlloc),
		formatBytes(p.memStats.Sys))

	if p.memStats.NumGC > p.lastGCCount {
		log.Printf("profiler: gc cycles=%d (new: %d) cpu=%.4f%%",
			p.memStats.NumGC,
			p.memStats.NumGC-p.lastGCCount,
			p.memStats.GCCPUFraction*100)
		p.lastGCCount = p.memStats.NumGC
	}

	for name, tracker := range p.operations {
		if len(tracker.durations) == 0 {
			continue
		}
		avg := tracker.totalTime / time.Duration(len(tracker.durations))
		log.Printf("profiler: %s avg=%v min=%v max=%v count=%d",
			name,
			avg.Truncate(time.Microsecond),
			tracker.minTime.Truncate(time.Microsecond),
			tracker.maxTime.Truncate(time.Microsecond),
			tracker.count)
	}
}

// formatBytes formats byte counts in human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// GetCurrentStats returns a snapshot of the current statistics.
//
// Returns:
// - A map containing uptime, memory figures, and per-operation timings
func (p *Profiler) GetCurrentStats() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make(map[string]interface{})
	stats["uptime"] = time.Since(p.startTime)
	stats["goroutines"] = runtime.NumGoroutine()

	runtime.ReadMemStats(&p.memStats)
	stats["memory"] = map[string]interface{}{
		"alloc":           p.memStats.Alloc,
		"total_alloc":     p.memStats.TotalAlloc,
		"sys":             p.memStats.Sys,
		"heap_alloc":      p.memStats.HeapAlloc,
		"heap_objects":    p.memStats.HeapObjects,
		"gc_cycles":       p.memStats.NumGC,
		"gc_cpu_fraction": p.memStats.GCCPUFraction,
	}

	operations := make(map[string]interface{})
	for name, tracker := range p.operations {
		if len(tracker.durations) == 0 {
			continue
		}
		avg := tracker.totalTime / time.Duration(len(tracker.durations))
		operations[name] = map[string]interface{}{
			"avg":   avg,
			"min":   tracker.minTime,
			"max":   tracker.maxTime,
			"count": tracker.count,
		}
	}
	stats["operations"] = operations

	return stats
}
