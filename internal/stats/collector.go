package stats

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/process"
)

// RuntimeStats holds the samples and phase marks of one run.
type RuntimeStats struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalElapsed time.Duration
	Samples      []Sample
	Phases       []Phase
	Summary      Summary
}

// Sample is a single reading of process and runtime state.
type Sample struct {
	Elapsed time.Duration
	// Memory stats (in bytes)
	HeapAlloc  uint64
	HeapSys    uint64
	Sys        uint64
	TotalAlloc uint64
	NumGC      uint32
	RSS        uint64
	// CPU stats
	CPUPercent   float64
	SystemCPU    []float64
	NumGoroutine int
}

// Phase is a named span of the run, for example inserting or querying.
type Phase struct {
	Name     string
	Start    time.Duration
	Duration time.Duration
	// Alloc is the number of bytes allocated during the phase
	Alloc uint64
}

type Summary struct {
	PeakHeapAlloc  uint64
	PeakSys        uint64
	PeakRSS        uint64
	PeakCPUPercent float64
	AvgCPUPercent  float64
	PeakGoroutines int
	TotalGCCycles  uint32
	SampleCount    int
	SampleInterval time.Duration
}

// Collector samples runtime statistics in the background until stopped.
type Collector struct {
	mu        sync.Mutex
	stats     RuntimeStats
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	interval  time.Duration
	proc      *process.Process

	phaseName  string
	phaseStart time.Time
	phaseAlloc uint64
}

func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process info: %w", err)
	}

	return &Collector{
		stats: RuntimeStats{
			Samples: make([]Sample, 0, 1000),
		},
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		proc:     proc,
	}, nil
}

func (c *Collector) Start() {
	c.startTime = time.Now()
	c.stats.StartTime = c.startTime

	go c.collect()
}

// Phase closes the current phase, if any, and opens a new one.
func (c *Collector) Phase(name string) {
	now := time.Now()
	alloc := totalAlloc()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closePhase(now, alloc)
	c.phaseName = name
	c.phaseStart = now
	c.phaseAlloc = alloc
}

func (c *Collector) closePhase(now time.Time, alloc uint64) {
	if c.phaseName == "" {
		return
	}
	c.stats.Phases = append(c.stats.Phases, Phase{
		Name:     c.phaseName,
		Start:    c.phaseStart.Sub(c.startTime),
		Duration: now.Sub(c.phaseStart),
		Alloc:    alloc - c.phaseAlloc,
	})
	c.phaseName = ""
}

func (c *Collector) collect() {
	defer close(c.doneChan)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()

	for {
		select {
		case <-c.stopChan:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	point := Sample{
		Elapsed:      time.Since(c.startTime),
		HeapAlloc:    memStats.HeapAlloc,
		HeapSys:      memStats.HeapSys,
		Sys:          memStats.Sys,
		TotalAlloc:   memStats.TotalAlloc,
		NumGC:        memStats.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}

	if memInfo, err := c.proc.MemoryInfo(); err == nil && memInfo != nil {
		point.RSS = memInfo.RSS
	}
	if cpuPercent, err := c.proc.CPUPercent(); err == nil {
		point.CPUPercent = cpuPercent
	}
	if systemCPU, err := cpu.Percent(0, true); err == nil {
		point.SystemCPU = systemCPU
	}

	c.mu.Lock()
	c.stats.Samples = append(c.stats.Samples, point)
	c.mu.Unlock()
}

// Stop stops collecting, closes the open phase and returns the final stats.
func (c *Collector) Stop() RuntimeStats {
	close(c.stopChan)
	<-c.doneChan

	now := time.Now()
	alloc := totalAlloc()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closePhase(now, alloc)
	c.stats.EndTime = now
	c.stats.TotalElapsed = c.stats.EndTime.Sub(c.stats.StartTime)
	c.stats.Summary = summarize(c.stats.Samples, c.interval)

	return c.stats
}

func summarize(samples []Sample, interval time.Duration) Summary {
	s := Summary{
		SampleCount:    len(samples),
		SampleInterval: interval,
	}
	if len(samples) == 0 {
		return s
	}

	var totalCPU float64
	for _, p := range samples {
		s.PeakHeapAlloc = max(s.PeakHeapAlloc, p.HeapAlloc)
		s.PeakSys = max(s.PeakSys, p.Sys)
		s.PeakRSS = max(s.PeakRSS, p.RSS)
		s.PeakCPUPercent = max(s.PeakCPUPercent, p.CPUPercent)
		s.PeakGoroutines = max(s.PeakGoroutines, p.NumGoroutine)
		s.TotalGCCycles = max(s.TotalGCCycles, p.NumGC)
		totalCPU += p.CPUPercent
	}
	s.AvgCPUPercent = totalCPU / float64(len(samples))
	return s
}

func totalAlloc() uint64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return memStats.TotalAlloc
}
