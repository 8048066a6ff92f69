package monitor

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// LoadSampler reads host CPU utilization and turns it into a binary
// busy/idle signal. The live harness maps "busy" onto the controller's
// disturbance flag, so real workload bursts exercise the safety override
// against the simulated battery.
type LoadSampler struct {
	threshold float64
}

// NewLoadSampler returns a sampler that reports busy above the given CPU
// percentage.
func NewLoadSampler(threshold float64) *LoadSampler {
	return &LoadSampler{threshold: threshold}
}

// Sample returns the current overall CPU utilization and whether it exceeds
// the busy threshold.
func (s *LoadSampler) Sample() (percent float64, busy bool, err error) {
	percentages, err := cpu.Percent(0, false)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cpu usage: %w", err)
	}

	var overall float64
	if len(percentages) > 0 {
		overall = percentages[0]
	}
	return overall, overall > s.threshold, nil
}

// Threshold returns the configured busy threshold.
func (s *LoadSampler) Threshold() float64 {
	return s.threshold
}
