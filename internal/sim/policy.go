package sim

import (
	"fmt"

	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/plant"
)

// Policy is one competitor in a simulation run: it is asked for an actuation
// once per step. Implementations are stateful and single-stream, like the
// controller they wrap.
type Policy interface {
	Name() string
	// Decide maps one sensor reading to a duty cycle and power mode.
	Decide(r plant.Reading) (duty float64, highPower bool, err error)
}

// Adaptive wraps the three-layer controller as a simulation policy.
type Adaptive struct {
	manager *decision.Manager

	// Last cycle's decision, retained for reporting.
	last decision.Decision
}

// NewAdaptive returns the adaptive policy backed by the given manager.
func NewAdaptive(m *decision.Manager) *Adaptive {
	return &Adaptive{manager: m}
}

func (a *Adaptive) Name() string { return "adaptive" }

func (a *Adaptive) Decide(r plant.Reading) (float64, bool, error) {
	d, err := a.manager.RunCycle(decision.Observation{
		Voltage:     r.Voltage,
		Disturbance: r.Disturbance,
		SoC:         r.SoC,
	})
	if err != nil {
		return 0, false, fmt.Errorf("adaptive policy: %w", err)
	}
	a.last = d
	return d.Duty, d.PowerMode == decision.PowerModeHigh, nil
}

// Last returns the most recent decision, for telemetry.
func (a *Adaptive) Last() decision.Decision {
	return a.last
}

// AlwaysOn is the naive baseline: full duty, full clock, no adaptation.
type AlwaysOn struct{}

func (AlwaysOn) Name() string { return "always_on" }

func (AlwaysOn) Decide(plant.Reading) (float64, bool, error) {
	return 1.0, true, nil
}

// Window is a [start, end) active interval in simulation seconds.
type Window struct {
	Start float64
	End   float64
}

// TimerBased runs at full output inside fixed schedule windows and idles
// outside them. It tracks its own elapsed time, one step per Decide call.
type TimerBased struct {
	windows  []Window
	dt       float64
	elapsed  float64
	idleDuty float64
}

// NewTimerBased returns a schedule-driven baseline stepping dt seconds per
// decision.
func NewTimerBased(windows []Window, dt float64) *TimerBased {
	return &TimerBased{windows: windows, dt: dt, idleDuty: 0.1}
}

func (p *TimerBased) Name() string { return "timer_based" }

func (p *TimerBased) Decide(plant.Reading) (float64, bool, error) {
	now := p.elapsed
	p.elapsed += p.dt

	for _, w := range p.windows {
		if now >= w.Start && now < w.End {
			return 1.0, true, nil
		}
	}
	return p.idleDuty, false, nil
}
