package sim

import (
	"fmt"
	"log/slog"

	"github.com/haskel/voltfox/internal/plant"
)

// CycleRecord is one step of telemetry.
type CycleRecord struct {
	Step        int     `json:"step"`
	Voltage     float64 `json:"voltage"`
	SoC         float64 `json:"soc"`
	Duty        float64 `json:"duty"`
	Current     float64 `json:"current"`
	Temperature float64 `json:"temperature"`
	HighPower   bool    `json:"high_power"`
	Disturbance bool    `json:"disturbance"`
}

// Summary aggregates one run.
type Summary struct {
	Policy          string  `json:"policy"`
	Steps           int     `json:"steps"`
	FinalSoC        float64 `json:"final_soc"`
	ChargeUsedMAH   float64 `json:"charge_used_mah"`
	MeanVoltage     float64 `json:"mean_voltage"`
	MinVoltage      float64 `json:"min_voltage"`
	HighFraction    float64 `json:"high_fraction"`
	MeanTemperature float64 `json:"mean_temperature"`
	Disturbances    int     `json:"disturbances"`
}

// Result is the outcome of one simulation run.
type Result struct {
	Summary Summary       `json:"summary"`
	Records []CycleRecord `json:"records,omitempty"`
}

// Engine drives a device and a policy in lockstep, one reading and one
// decision per step.
type Engine struct {
	steps       int
	dt          float64
	keepRecords bool
	logger      *slog.Logger
}

// EngineConfig holds run parameters.
type EngineConfig struct {
	Steps int
	// DT is the simulated seconds per step.
	DT float64
	// KeepRecords retains per-cycle telemetry in the result. Off for long
	// comparison runs where only the summary matters.
	KeepRecords bool
}

// NewEngine returns an engine for the given run parameters.
func NewEngine(cfg EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		steps:       cfg.Steps,
		dt:          cfg.DT,
		keepRecords: cfg.KeepRecords,
		logger:      logger,
	}
}

// Run steps the device under the policy's control until the step budget is
// spent or the pack is empty, and returns the aggregated result.
func (e *Engine) Run(p Policy, dev *plant.Device) (*Result, error) {
	// The first reading comes from an idle step so the policy always
	// decides on a real measurement.
	reading := dev.Step(e.dt, 0, false)

	res := &Result{Summary: Summary{Policy: p.Name(), MinVoltage: reading.Voltage}}
	if e.keepRecords {
		res.Records = make([]CycleRecord, 0, e.steps)
	}

	var sumVoltage, sumTemp float64
	var highSteps, steps int

	for i := 0; i < e.steps; i++ {
		duty, high, err := p.Decide(reading)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		reading = dev.Step(e.dt, duty, high)
		steps++

		sumVoltage += reading.Voltage
		sumTemp += reading.Temperature
		if high {
			highSteps++
		}
		if reading.Disturbance {
			res.Summary.Disturbances++
		}
		if reading.Voltage < res.Summary.MinVoltage {
			res.Summary.MinVoltage = reading.Voltage
		}

		if e.keepRecords {
			res.Records = append(res.Records, CycleRecord{
				Step:        i,
				Voltage:     reading.Voltage,
				SoC:         reading.SoC,
				Duty:        duty,
				Current:     reading.Current,
				Temperature: reading.Temperature,
				HighPower:   high,
				Disturbance: reading.Disturbance,
			})
		}

		if reading.SoC <= 0 {
			e.logger.Warn("pack depleted, stopping run", "policy", p.Name(), "step", i)
			break
		}
	}

	res.Summary.Steps = steps
	res.Summary.FinalSoC = dev.SoC()
	res.Summary.ChargeUsedMAH = dev.ChargeUsedMAH()
	if steps > 0 {
		res.Summary.MeanVoltage = sumVoltage / float64(steps)
		res.Summary.MeanTemperature = sumTemp / float64(steps)
		res.Summary.HighFraction = float64(highSteps) / float64(steps)
	}

	e.logger.Info("run complete",
		"policy", p.Name(),
		"steps", steps,
		"final_soc", res.Summary.FinalSoC,
		"charge_used_mah", res.Summary.ChargeUsedMAH,
		"high_fraction", res.Summary.HighFraction,
	)

	return res, nil
}
