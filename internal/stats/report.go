package stats

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const rule = "--------------------------------------------------------------------------------\n"

// WriteReport renders the stats as a human readable text report.
func (stats *RuntimeStats) WriteReport(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("RUNTIME STATISTICS\n")
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "  Start Time:      %s\n", stats.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "  Total Duration:  %s\n", stats.TotalElapsed.Round(time.Millisecond))
	fmt.Fprintf(&sb, "  Samples:         %d every %s\n", stats.Summary.SampleCount, stats.Summary.SampleInterval)
	sb.WriteString("\n")

	if len(stats.Phases) > 0 {
		sb.WriteString("PHASES\n")
		sb.WriteString(rule)
		fmt.Fprintf(&sb, "  %-32s %-14s %-14s\n", "Phase", "Duration", "Allocated")
		for _, p := range stats.Phases {
			fmt.Fprintf(&sb, "  %-32s %-14s %-14s\n", p.Name, p.Duration.Round(time.Microsecond), humanize.IBytes(p.Alloc))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("PEAKS\n")
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "  Heap Allocated:  %s\n", humanize.IBytes(stats.Summary.PeakHeapAlloc))
	fmt.Fprintf(&sb, "  Total System:    %s\n", humanize.IBytes(stats.Summary.PeakSys))
	fmt.Fprintf(&sb, "  Process RSS:     %s\n", humanize.IBytes(stats.Summary.PeakRSS))
	fmt.Fprintf(&sb, "  CPU:             %.2f%% peak, %.2f%% average\n", stats.Summary.PeakCPUPercent, stats.Summary.AvgCPUPercent)
	fmt.Fprintf(&sb, "  Goroutines:      %d\n", stats.Summary.PeakGoroutines)
	fmt.Fprintf(&sb, "  GC Cycles:       %s\n", humanize.Comma(int64(stats.Summary.TotalGCCycles)))
	sb.WriteString("\n")

	sb.WriteString("SAMPLES\n")
	sb.WriteString(rule)

	const maxSamples = 100
	samples := stats.Samples
	if len(samples) > maxSamples {
		samples = evenly(samples, maxSamples)
		fmt.Fprintf(&sb, "  (Showing %d of %d samples, evenly distributed)\n", maxSamples, len(stats.Samples))
	}
	fmt.Fprintf(&sb, "  %-12s %-14s %-14s %-14s %-10s %-10s\n",
		"Elapsed", "Heap Alloc", "Process RSS", "Sys Memory", "CPU %", "Goroutines")
	for _, s := range samples {
		fmt.Fprintf(&sb, "  %-12s %-14s %-14s %-14s %-10.1f %-10d\n",
			s.Elapsed.Round(100*time.Millisecond),
			humanize.IBytes(s.HeapAlloc),
			humanize.IBytes(s.RSS),
			humanize.IBytes(s.Sys),
			s.CPUPercent,
			s.NumGoroutine)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (stats *RuntimeStats) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer f.Close()

	if err := stats.WriteReport(f); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return f.Close()
}

func evenly[T any](items []T, n int) []T {
	out := make([]T, 0, n)
	step := float64(len(items)-1) / float64(n-1)
	for i := range n {
		out = append(out, items[int(float64(i)*step)])
	}
	return out
}
