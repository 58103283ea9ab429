package runner

import (
	"sync"
	"time"

	"github.com/rom8726/uutreport"
)

// Stats accumulates test case outcomes across runs. Safe for concurrent use.
type Stats struct {
	mu sync.Mutex

	total    int
	byStatus map[uutreport.StepStatus]int
	duration time.Duration
}

// NewStats creates an empty collector
func NewStats() *Stats {
	return &Stats{
		byStatus: make(map[uutreport.StepStatus]int),
	}
}

func (s *Stats) record(status uutreport.StepStatus, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byStatus[status]++
	s.duration += elapsed
}

// Snapshot is a point-in-time copy of the collected counters
type Snapshot struct {
	Total      int
	Passed     int
	Failed     int
	Skipped    int
	Errored    int
	Terminated int
	Duration   time.Duration
}

// Snapshot returns a copy of the current counters
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Total:      s.total,
		Passed:     s.byStatus[uutreport.StepPassed],
		Failed:     s.byStatus[uutreport.StepFailed],
		Skipped:    s.byStatus[uutreport.StepSkipped],
		Errored:    s.byStatus[uutreport.StepError],
		Terminated: s.byStatus[uutreport.StepTerminated],
		Duration:   s.duration,
	}
}
