package plant

import (
	"math"
	"math/rand"
)

// Config holds the simulated device's physical parameters. Defaults model a
// 2S Li-Ion pack driving a 10 ohm base load with an ESP32-class controller.
type Config struct {
	// CapacityMAH is the pack capacity in milliamp hours.
	CapacityMAH float64
	// InternalResistance is the pack's internal resistance in ohms,
	// responsible for terminal voltage sag under load.
	InternalResistance float64
	// BaseLoadOhms is the baseline load resistance.
	BaseLoadOhms float64
	// DisturbanceRate is the per-step probability of the external load
	// event toggling (a motor stalling or releasing). Zero disables the
	// internal toggle so a caller can drive disturbances directly.
	DisturbanceRate float64
	// ThermalMass slows heating and cooling; higher means more sluggish.
	ThermalMass float64
	// CoolingRate is the convective cooling coefficient toward ambient.
	CoolingRate float64
	// AmbientTemp is the ambient temperature in Celsius.
	AmbientTemp float64
}

// DefaultConfig returns the reference device parameters.
func DefaultConfig() Config {
	return Config{
		CapacityMAH:        2000,
		InternalResistance: 0.3,
		BaseLoadOhms:       10,
		DisturbanceRate:    0.05,
		ThermalMass:        15,
		CoolingRate:        0.08,
		AmbientTemp:        25,
	}
}

// Compute-side current draw per power mode, amps. High clock burns an order
// of magnitude more than sleep.
const (
	cpuCurrentHigh = 0.15
	cpuCurrentLow  = 0.02
)

// disturbanceLoadFactor scales the load resistance while a disturbance is
// active: the load gets heavy, resistance drops, current climbs.
const disturbanceLoadFactor = 0.4

// Battery voltage span, volts, linear in state of charge.
const (
	fullVoltage  = 8.4
	emptyVoltage = 6.0
)

// Reading is one step's sensor output, shaped like what the controller
// consumes per cycle plus diagnostics the harness reports.
type Reading struct {
	Voltage     float64 // terminal voltage, volts
	Disturbance bool
	SoC         float64 // state of charge, percent
	Current     float64 // true current draw, amps (not visible to the controller)
	Temperature float64 // pack temperature, Celsius
}

// Device simulates the battery, load, and thermal behavior of the target
// hardware one time step at a time. All randomness (disturbance toggles)
// comes from the injected source.
type Device struct {
	cfg Config
	rng *rand.Rand

	chargeMAH   float64
	ocv         float64
	terminalV   float64
	currentDraw float64
	temperature float64
	disturbance bool
}

// New returns a fully charged device at ambient temperature.
func New(cfg Config, rng *rand.Rand) *Device {
	return &Device{
		cfg:         cfg,
		rng:         rng,
		chargeMAH:   cfg.CapacityMAH,
		ocv:         fullVoltage,
		terminalV:   fullVoltage,
		temperature: cfg.AmbientTemp,
	}
}

// Step advances the physics by dt seconds under the given actuation duty
// cycle and compute power mode, and returns the resulting sensor reading.
func (d *Device) Step(dt, duty float64, highPower bool) Reading {
	if d.cfg.DisturbanceRate > 0 && d.rng.Float64() < d.cfg.DisturbanceRate {
		d.disturbance = !d.disturbance
	}

	rLoad := d.cfg.BaseLoadOhms
	if d.disturbance {
		rLoad *= disturbanceLoadFactor
	}

	// PWM masking: the load sees the terminal voltage scaled by duty.
	vApplied := d.terminalV * duty
	iLoad := vApplied / rLoad

	iCPU := cpuCurrentLow
	if highPower {
		iCPU = cpuCurrentHigh
	}
	d.currentDraw = iLoad + iCPU

	// Coulomb counting: amps * seconds, converted to mAh.
	coulombs := d.currentDraw * dt
	d.chargeMAH -= coulombs * 1000 / 3600

	socFactor := math.Max(0, d.chargeMAH/d.cfg.CapacityMAH)

	// Linear Li-Ion approximation plus ohmic sag.
	d.ocv = emptyVoltage + (fullVoltage-emptyVoltage)*socFactor
	d.terminalV = d.ocv - d.currentDraw*d.cfg.InternalResistance

	// Joule heating from the pack's internal resistance plus compute heat,
	// against Newton cooling toward ambient.
	heat := d.currentDraw*d.currentDraw*d.cfg.InternalResistance + iCPU*3.3
	rise := heat * dt / d.cfg.ThermalMass
	cooling := (d.temperature - d.cfg.AmbientTemp) * d.cfg.CoolingRate * dt
	d.temperature += rise - cooling

	return Reading{
		Voltage:     d.terminalV,
		Disturbance: d.disturbance,
		SoC:         socFactor * 100,
		Current:     d.currentDraw,
		Temperature: d.temperature,
	}
}

// SetDisturbance forces the disturbance flag, for harnesses that derive the
// disturbance signal externally instead of from the internal toggle.
func (d *Device) SetDisturbance(active bool) {
	d.disturbance = active
}

// SoC returns the current state of charge in percent.
func (d *Device) SoC() float64 {
	return math.Max(0, d.chargeMAH/d.cfg.CapacityMAH) * 100
}

// ChargeUsedMAH returns the charge drawn since construction.
func (d *Device) ChargeUsedMAH() float64 {
	return d.cfg.CapacityMAH - d.chargeMAH
}

// Temperature returns the pack temperature in Celsius.
func (d *Device) Temperature() float64 {
	return d.temperature
}
