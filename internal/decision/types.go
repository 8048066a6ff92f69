package decision

import (
	"errors"
	"fmt"
	"math"
)

// Battery electrical constants for a 2S Li-Ion pack. The open-circuit
// voltage is modeled as linear in state of charge between these two points.
const (
	FullVoltage  = 8.4
	EmptyVoltage = 6.0
)

// PowerMode is the compute power state requested alongside the duty cycle.
type PowerMode string

const (
	PowerModeHigh PowerMode = "HIGH"
	PowerModeLow  PowerMode = "LOW"
)

// Observation is one per-cycle sensor reading supplied by the harness.
type Observation struct {
	// Voltage is the measured terminal voltage in volts.
	Voltage float64
	// Disturbance reports an active external load event (motor stall,
	// movement) demanding fast voltage recovery.
	Disturbance bool
	// SoC is the state of charge in percent, 0-100.
	SoC float64
}

// ErrInvalidObservation reports a missing, non-finite, or physically
// impossible observation field. The cycle is rejected before any component
// state is touched.
var ErrInvalidObservation = errors.New("invalid observation")

// Validate checks the observation against physical ranges.
func (o Observation) Validate() error {
	if math.IsNaN(o.Voltage) || math.IsInf(o.Voltage, 0) || o.Voltage < 0 {
		return fmt.Errorf("%w: voltage %v", ErrInvalidObservation, o.Voltage)
	}
	if math.IsNaN(o.SoC) || math.IsInf(o.SoC, 0) || o.SoC < 0 || o.SoC > 100 {
		return fmt.Errorf("%w: state of charge %v", ErrInvalidObservation, o.SoC)
	}
	return nil
}

// Decision is the controller output for one cycle.
type Decision struct {
	// Duty is the actuation duty cycle, always within [0.1, 1.0].
	Duty float64
	// PowerMode is the requested compute power state.
	PowerMode PowerMode
	// Current is the estimated instantaneous current draw in amps, >= 0.
	Current float64
}

// DeltaBaseline selects which duty value the power-mode delta is measured
// against. The literal behavior compares the new duty cycle with the
// controller's just-updated stored value, which the controller also returns,
// so that delta is identically zero and power mode follows the disturbance
// flag alone; comparing against the pre-update value measures the actual
// per-cycle change. Both are supported so either behavior can be
// characterized.
type DeltaBaseline int

const (
	// DeltaPostUpdate compares against the duty cycle after this cycle's
	// controller update. This is the default.
	DeltaPostUpdate DeltaBaseline = iota
	// DeltaPreUpdate compares against the duty cycle before this cycle's
	// controller update.
	DeltaPreUpdate
)
