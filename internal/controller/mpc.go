package controller

import (
	"errors"
	"fmt"
	"math"
)

// Duty cycle limits. The converter never switches fully off: a floor of 10%
// keeps the output rail alive for the sensing path.
const (
	MinDuty = 0.1
	MaxDuty = 1.0
)

// Default discrete-time gains for the first-order converter response
// v[k+1] = a*v[k] + b*u[k], in normalized volts.
const (
	DefaultGainA = 0.9
	DefaultGainB = 0.8
)

// ErrDegenerateGains reports a control law whose closed-form denominator is
// zero or non-finite. It can only happen with pathological gains; failing is
// preferred over emitting a NaN duty cycle.
var ErrDegenerateGains = errors.New("degenerate plant gains")

// DutyController computes an actuation duty cycle by minimizing a two-step
// tracking-plus-effort cost in closed form. Step one tracks the target
// directly; step two tracks it through the one-step prediction under the
// previous duty cycle at half weight; the effort term penalizes deviation
// from the previous duty cycle, weighted by the caller-supplied penalty.
//
// No iterative solver is involved. For a fixed two-step horizon the optimum
// has an analytic expression, which is all an embedded target can afford.
type DutyController struct {
	a, b float64
	u    float64
}

// New returns a controller with the default converter gains and the duty
// cycle pinned at full output.
func New() *DutyController {
	return NewWithGains(DefaultGainA, DefaultGainB)
}

// NewWithGains returns a controller for a plant with the given discrete-time
// gains. Gains are fixed for the controller's lifetime; there is no online
// identification.
func NewWithGains(a, b float64) *DutyController {
	return &DutyController{a: a, b: b, u: MaxDuty}
}

// Compute returns the duty cycle minimizing the two-step cost for the given
// normalized target and measured voltage. penalty weights the control-effort
// term: small values chase the target hard, large values hold the previous
// duty cycle. The result is clipped to [MinDuty, MaxDuty] and retained as
// the new previous duty cycle.
func (c *DutyController) Compute(targetNorm, currentNorm, penalty float64) (float64, error) {
	vNext := c.a*currentNorm + c.b*c.u

	num := c.b*(targetNorm-c.a*currentNorm) +
		0.5*c.a*c.b*(targetNorm-vNext) +
		penalty*c.u
	den := c.b*c.b + 0.5*c.a*c.b*c.b + penalty

	// Structurally positive for penalty >= 0 and b != 0, but a bad gain set
	// must fail loudly rather than propagate a non-finite duty cycle.
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0, fmt.Errorf("%w: a=%v b=%v penalty=%v", ErrDegenerateGains, c.a, c.b, penalty)
	}

	c.u = clamp(num/den, MinDuty, MaxDuty)
	return c.u, nil
}

// Duty returns the last applied duty cycle.
func (c *DutyController) Duty() float64 {
	return c.u
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
