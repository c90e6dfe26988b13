// Package rover is the screen model for the rover telemetry page. The
// dashboard has no live rover feed, so a simulator produces plausible
// telemetry locally while the real data collection is triggered through
// the remote API.
package rover

import (
	"context"
	"sync"
	"time"

	"github.com/florisys/field.report/internal/monitoring"
)

// Sample is one telemetry reading.
type Sample struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	SpeedMS    float64   `json:"speed_ms"`
	HeadingDeg float64   `json:"heading_deg"`
	BatteryPct float64   `json:"battery_pct"`
}

// Collector triggers a rover data collection run for a bed.
// *remote.Client satisfies it.
type Collector interface {
	CollectRoverData(ctx context.Context, plotID, bedID string) error
}

// Monitor keeps a bounded history of telemetry samples and forwards
// collection requests to the backend.
type Monitor struct {
	collector Collector

	mu      sync.Mutex
	limit   int
	samples []Sample
}

// NewMonitor builds a monitor keeping at most limit samples. A limit of
// zero or less falls back to 512.
func NewMonitor(collector Collector, limit int) *Monitor {
	if limit <= 0 {
		limit = 512
	}
	return &Monitor{collector: collector, limit: limit}
}

// Record appends a sample, evicting the oldest once the history is full.
func (m *Monitor) Record(s Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, s)
	if overflow := len(m.samples) - m.limit; overflow > 0 {
		m.samples = append(m.samples[:0], m.samples[overflow:]...)
	}
}

// Snapshot returns a copy of the history, oldest first.
func (m *Monitor) Snapshot() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.samples...)
}

// Latest returns the most recent sample, or false when the history is
// empty.
func (m *Monitor) Latest() (Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.samples) == 0 {
		return Sample{}, false
	}
	return m.samples[len(m.samples)-1], true
}

// Collect asks the backend to start a rover collection run over a bed.
func (m *Monitor) Collect(ctx context.Context, plotID, bedID string) error {
	if err := m.collector.CollectRoverData(ctx, plotID, bedID); err != nil {
		monitoring.Logf("rover: collect for bed %s failed: %v", bedID, err)
		return err
	}
	return nil
}
